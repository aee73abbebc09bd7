package services

import (
	"context"
	"database/sql"

	"linkboard/internal/common"
	"linkboard/internal/dbx"
	"linkboard/internal/server/config"
	"linkboard/internal/server/models"
	"linkboard/internal/server/repositories/repomanager"
)

// LinkService implements the feed query engine and the link mutation
// workflow.
type LinkService struct {
	db              *sql.DB
	repos           repomanager.RepositoryManager
	strictOwnership bool
}

// NewLinkService constructs a LinkService using repositories and server config.
func NewLinkService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *LinkService {
	return &LinkService{
		db:              db,
		repos:           m,
		strictOwnership: cfg.StrictOwnership,
	}
}

// Feed validates the query and returns the windowed links, the filter-wide
// count, and the query's cache key. List and count run in one read-only
// transaction so the count matches the snapshot the page came from.
func (s *LinkService) Feed(ctx context.Context, q models.FeedQuery) (*models.Feed, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	feed := &models.Feed{ID: q.CacheKey()}
	err := dbx.WithTx(ctx, s.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Links(tx)

		links, err := repo.List(ctx, q)
		if err != nil {
			return err
		}

		count, err := repo.Count(ctx, q.Filter)
		if err != nil {
			return err
		}

		feed.Links = links
		feed.Count = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	return feed, nil
}

// Get returns a single link by id.
func (s *LinkService) Get(ctx context.Context, id int64) (*models.Link, error) {
	return s.repos.Links(s.db).GetByID(ctx, id)
}

// Post creates a link owned by the requester. Anonymous callers are
// rejected; the store assigns the creation timestamp.
func (s *LinkService) Post(ctx context.Context, description, url, userID string) (*models.Link, error) {
	if userID == "" {
		return nil, common.ErrUnauthenticated
	}

	link := &models.Link{Description: description, URL: url, PostedBy: userID}
	return s.repos.Links(s.db).Create(ctx, link)
}

// Update overwrites the supplied fields (an explicit null overwrites with
// the empty string) and leaves absent ones unchanged. Ownership is enforced
// only in strict mode.
func (s *LinkService) Update(ctx context.Context, id int64, description, url models.OptionalString, userID string) (*models.Link, error) {
	if err := s.checkOwnership(ctx, id, userID); err != nil {
		return nil, err
	}

	return s.repos.Links(s.db).Update(ctx, id, description, url)
}

// Delete removes the link and returns its prior state. Ownership is enforced
// only in strict mode.
func (s *LinkService) Delete(ctx context.Context, id int64, userID string) (*models.Link, error) {
	if err := s.checkOwnership(ctx, id, userID); err != nil {
		return nil, err
	}

	return s.repos.Links(s.db).Delete(ctx, id)
}

// Voters loads the users who voted for the link.
func (s *LinkService) Voters(ctx context.Context, linkID int64) ([]*models.User, error) {
	return s.repos.Links(s.db).Voters(ctx, linkID)
}

// OwnedBy loads the links posted by the user.
func (s *LinkService) OwnedBy(ctx context.Context, userID string) ([]*models.Link, error) {
	return s.repos.Links(s.db).OwnedBy(ctx, userID)
}

func (s *LinkService) checkOwnership(ctx context.Context, id int64, userID string) error {
	if !s.strictOwnership {
		return nil
	}
	if userID == "" {
		return common.ErrUnauthenticated
	}

	link, err := s.repos.Links(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	if link.PostedBy != userID {
		return common.ErrPermissionDenied
	}

	return nil
}

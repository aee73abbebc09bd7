package services

import (
	"context"
	"database/sql"

	"linkboard/internal/common"
	"linkboard/internal/dbx"
	"linkboard/internal/server/models"
	"linkboard/internal/server/repositories/repomanager"
)

// VoteService records votes. A (user, link) pair is a set member: the first
// cast moves it to voted, every later cast is a no-op success.
type VoteService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewVoteService constructs a VoteService using repositories.
func NewVoteService(db *sql.DB, m repomanager.RepositoryManager) *VoteService {
	return &VoteService{db: db, repos: m}
}

// Cast records the requester's vote on the link. The join-add itself is an
// atomic add-if-absent at the store; the transaction only keeps the
// existence check and the returned records on one snapshot.
func (s *VoteService) Cast(ctx context.Context, linkID int64, userID string) (*models.Vote, error) {
	if userID == "" {
		return nil, common.ErrUnauthenticated
	}

	vote := &models.Vote{}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		linkRepo := s.repos.Links(tx)

		link, err := linkRepo.GetByID(ctx, linkID)
		if err != nil {
			return err
		}

		if err := linkRepo.AddVote(ctx, userID, linkID); err != nil {
			return err
		}

		user, err := s.repos.Users(tx).GetByID(ctx, userID)
		if err != nil {
			return err
		}

		vote.Link = link
		vote.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return vote, nil
}

package links

import (
	"context"

	"linkboard/internal/server/models"
)

// Repository is the store adapter for links and the vote join.
type Repository interface {
	// Create persists a new link; the store assigns id and created_at.
	Create(ctx context.Context, link *models.Link) (*models.Link, error)

	// GetByID returns the link or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Link, error)

	// List returns the filtered, ordered, windowed links for a feed query.
	// The query must already be validated.
	List(ctx context.Context, q models.FeedQuery) ([]*models.Link, error)

	// Count returns the number of links matching the filter, independent of
	// any pagination window.
	Count(ctx context.Context, filter *string) (int, error)

	// Update overwrites the supplied fields and returns the updated link.
	// Absent fields are left unchanged.
	Update(ctx context.Context, id int64, description, url models.OptionalString) (*models.Link, error)

	// Delete removes the link and returns its prior state.
	Delete(ctx context.Context, id int64) (*models.Link, error)

	// AddVote records (userID, linkID) as an atomic add-if-absent; voting
	// again for the same pair is a no-op.
	AddVote(ctx context.Context, userID string, linkID int64) error

	// Voters returns the users who voted for the link.
	Voters(ctx context.Context, linkID int64) ([]*models.User, error)

	// OwnedBy returns the links posted by the user.
	OwnedBy(ctx context.Context, userID string) ([]*models.Link, error)
}

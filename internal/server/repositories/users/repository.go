package users

import (
	"context"

	"linkboard/internal/server/models"
)

// Repository is the store adapter for user records.
type Repository interface {
	// Create persists a new user and returns it with the generated id and
	// creation time. A duplicate email yields common.ErrDuplicateIdentity.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks a user up by exact email match. This is the only
	// read that populates PasswordHash.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID looks a user up by id, without the password hash.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

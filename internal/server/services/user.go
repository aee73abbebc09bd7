// Package services contains the server-side business logic. This file
// implements UserService: registration, login, and the token issue path.
// Password hashes never leave this service.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"linkboard/internal/common"
	"linkboard/internal/server/auth"
	"linkboard/internal/server/config"
	"linkboard/internal/server/models"
	"linkboard/internal/server/repositories/repomanager"
)

// AuthPayload bundles a freshly issued bearer token with its user.
type AuthPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService handles registration and login. Failed credential checks are
// never retried here; the caller distinguishes repeated failures for
// rate-limiting.
type UserService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	jwtSecret  []byte
	bcryptCost int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:         db,
		repos:      m,
		jwtSecret:  []byte(cfg.AppSecret),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a user with a salted adaptive hash of the password and
// issues a token bound to the new identity. A taken email yields
// common.ErrDuplicateIdentity.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthPayload, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	repo := s.repos.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: string(hash)})
	if err != nil {
		return nil, err
	}

	return s.payload(user)
}

// Login verifies the password against the stored hash and issues a fresh
// token. An unknown email yields common.ErrNotFound, a mismatch
// common.ErrInvalidCredential.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrInvalidCredential
	}

	return s.payload(user)
}

// Get returns the user by id, without credential material.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repos.Users(s.db).GetByID(ctx, id)
}

func (s *UserService) payload(user *models.User) (*AuthPayload, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	// The hash stays inside this service.
	user.PasswordHash = ""

	return &AuthPayload{Token: token, User: user}, nil
}

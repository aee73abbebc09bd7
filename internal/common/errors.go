// Package common defines sentinel errors shared across the linkboard
// service layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateIdentity = errors.New("email already taken")
	ErrStoreUnavailable  = errors.New("store unavailable")

	// Service-level errors.
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// StoreError wraps a collaborator failure so callers can match it with
// errors.Is(err, ErrStoreUnavailable) while keeping the cause in the message.
func StoreError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// Package models defines the persistent and derived types shared by
// repositories, services, and the request layer.
package models

import "time"

// User is a registered account. PasswordHash is populated only on the
// credential path (lookup by email) and never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

package models

import (
	"time"
)

// User represents a user entity. IDs are opaque text keys rather than
// native uuids so that seeded "test-" prefixed rows can coexist with
// generated ones.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash *string   `json:"-"` // Never serialize password hash
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

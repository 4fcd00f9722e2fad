package domain

import (
	"context"
	"time"
)

// User represents a registered account. The numeric ID is the single stable
// identifier: it is the foreign key on owned records and the subject embedded
// in issued tokens.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

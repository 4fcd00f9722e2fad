package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single expense record owned by a user. UserID is set
// exactly once at creation, from the authenticated identity.
type Expense struct {
	ID        int64
	UserID    int64
	Title     string
	Amount    decimal.Decimal
	Date      time.Time
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpenseRepository defines persistence operations for expenses. Every
// operation that touches an existing row carries the owner's user ID and must
// match on it, so a row belonging to another user behaves exactly like a row
// that does not exist.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	GetByOwner(ctx context.Context, id, userID int64) (*Expense, error)
	ListByOwner(ctx context.Context, userID int64) ([]Expense, error)
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id, userID int64) error
}

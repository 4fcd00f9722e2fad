package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mvess/spendlog/internal/domain"
	"github.com/shopspring/decimal"
)

// ExpenseService owns validation and ownership scoping for expense records.
// Every method takes the authenticated owner's user ID as an explicit
// argument; the service never reads an owner from client input.
type ExpenseService struct {
	expenses domain.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenses domain.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

// ExpenseInput carries the client-editable fields of an expense. Amount is a
// pointer so a missing amount can be told apart from a legitimate zero. Date
// is the raw request string, validated here.
type ExpenseInput struct {
	Title    string
	Amount   *decimal.Decimal
	Date     string
	ImageURL string
}

// Create inserts a new expense owned by ownerID.
func (s *ExpenseService) Create(ctx context.Context, ownerID int64, in ExpenseInput) (*domain.Expense, error) {
	expense, err := buildExpense(ownerID, in)
	if err != nil {
		return nil, err
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return expense, nil
}

// List returns all expenses owned by ownerID, in insertion order.
func (s *ExpenseService) List(ctx context.Context, ownerID int64) ([]domain.Expense, error) {
	expenses, err := s.expenses.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Update replaces the editable fields of the expense identified by id,
// provided it is owned by ownerID. Returns domain.ErrNotFound when the id
// does not exist or belongs to another user.
func (s *ExpenseService) Update(ctx context.Context, ownerID, id int64, in ExpenseInput) (*domain.Expense, error) {
	expense, err := buildExpense(ownerID, in)
	if err != nil {
		return nil, err
	}
	expense.ID = id

	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}

	updated, err := s.expenses.GetByOwner(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reload expense: %w", err)
	}
	return updated, nil
}

// Delete permanently removes the expense identified by id, provided it is
// owned by ownerID. Returns domain.ErrNotFound when nothing was deleted.
func (s *ExpenseService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.expenses.Delete(ctx, id, ownerID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func buildExpense(ownerID int64, in ExpenseInput) (*domain.Expense, error) {
	if in.Title == "" || in.Amount == nil || in.Date == "" {
		return nil, fmt.Errorf("%w: title, amount, and date are required", domain.ErrInvalidInput)
	}

	date, err := time.Parse(time.DateOnly, in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", domain.ErrInvalidInput)
	}

	return &domain.Expense{
		UserID:   ownerID,
		Title:    in.Title,
		Amount:   *in.Amount,
		Date:     date,
		ImageURL: in.ImageURL,
	}, nil
}

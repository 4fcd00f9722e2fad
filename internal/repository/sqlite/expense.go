package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mvess/spendlog/internal/domain"
	"github.com/shopspring/decimal"
)

// expenseRepo implements domain.ExpenseRepository using SQLite. Amounts are
// stored as decimal strings to avoid floating-point drift; dates as YYYY-MM-DD.
// Every query against existing rows filters on user_id so that rows owned by
// other users are indistinguishable from missing rows.
type expenseRepo struct {
	db *sql.DB
}

func (r *expenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, title, amount, date, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.UserID, expense.Title, expense.Amount.String(),
		expense.Date.Format(time.DateOnly), expense.ImageURL, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	expense.ID = id
	expense.CreatedAt = now
	expense.UpdatedAt = now
	return nil
}

func (r *expenseRepo) GetByOwner(ctx context.Context, id, userID int64) (*domain.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, amount, date, image_url, created_at, updated_at
		 FROM expenses WHERE id = ? AND user_id = ?`, id, userID)

	expense, err := scanExpense(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query expense: %w", err)
	}
	return expense, nil
}

func (r *expenseRepo) ListByOwner(ctx context.Context, userID int64) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, amount, date, image_url, created_at, updated_at
		 FROM expenses WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	return expenses, rows.Err()
}

func (r *expenseRepo) Update(ctx context.Context, expense *domain.Expense) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET title = ?, amount = ?, date = ?, image_url = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		expense.Title, expense.Amount.String(), expense.Date.Format(time.DateOnly),
		expense.ImageURL, now, expense.ID, expense.UserID,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	expense.UpdatedAt = now
	return nil
}

func (r *expenseRepo) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanExpense reads one expense row, converting the stored amount and date
// text back into their domain types.
func scanExpense(scan func(dest ...any) error) (*domain.Expense, error) {
	e := &domain.Expense{}
	var amount, date string
	if err := scan(&e.ID, &e.UserID, &e.Title, &amount, &date, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}

	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	e.Amount = parsedAmount

	parsedDate, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	e.Date = parsedDate

	return e, nil
}

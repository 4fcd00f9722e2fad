package handler

import (
	"time"

	"github.com/mvess/spendlog/internal/domain"
	"github.com/shopspring/decimal"
)

// ExpenseDTO is the JSON representation of an expense record. Amounts
// serialize as decimal strings so clients never see float rounding.
type ExpenseDTO struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

func toExpenseDTO(e *domain.Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:        e.ID,
		Title:     e.Title,
		Amount:    e.Amount,
		Date:      e.Date.Format(time.DateOnly),
		ImageURL:  e.ImageURL,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
}

func toExpenseDTOs(expenses []domain.Expense) []ExpenseDTO {
	dtos := make([]ExpenseDTO, len(expenses))
	for i := range expenses {
		dtos[i] = toExpenseDTO(&expenses[i])
	}
	return dtos
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mvess/spendlog/internal/domain"
	"github.com/mvess/spendlog/internal/service"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense CRUD HTTP requests. All routes sit behind
// RequireAuth; the owner of every operation is the context identity, never a
// field of the request body.
type ExpenseHandler struct {
	expenses *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type expenseRequest struct {
	Title    string           `json:"title"`
	Amount   *decimal.Decimal `json:"amount"`
	Date     string           `json:"date"`
	ImageURL string           `json:"imageUrl"`
}

func (req expenseRequest) toInput() service.ExpenseInput {
	return service.ExpenseInput{
		Title:    req.Title,
		Amount:   req.Amount,
		Date:     req.Date,
		ImageURL: req.ImageURL,
	}
}

// HandleCreate inserts a new expense owned by the caller.
// POST /expenses
// Request:  {"title":"...","amount":3.5,"date":"2024-01-01","imageUrl":"..."}
// Response: 201 {"expense": {...}}
func (h *ExpenseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req expenseRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	expense, err := h.expenses.Create(r.Context(), user.ID, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Title, amount, and date are required.")
			return
		}
		slog.Error("create expense", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"expense": toExpenseDTO(expense),
	})
}

// HandleList returns all of the caller's expenses, oldest first.
// GET /expenses
// Response: 200 {"expenses": [...]}
func (h *ExpenseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	expenses, err := h.expenses.List(r.Context(), user.ID)
	if err != nil {
		slog.Error("list expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"expenses": toExpenseDTOs(expenses),
	})
}

// HandleUpdate replaces an expense owned by the caller.
// PUT /expenses/{id}
// Response: 200 {"expense": {...}}; 404 when the id does not exist or belongs
// to another user.
func (h *ExpenseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense id.")
		return
	}

	var req expenseRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	expense, err := h.expenses.Update(r.Context(), user.ID, id, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Title, amount, and date are required.")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Expense not found.")
			return
		}
		slog.Error("update expense", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"expense": toExpenseDTO(expense),
	})
}

// HandleDelete permanently removes an expense owned by the caller.
// DELETE /expenses/{id}
// Response: 200 {"message":"..."}; 404 when nothing was deleted.
func (h *ExpenseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense id.")
		return
	}

	if err := h.expenses.Delete(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Expense not found.")
			return
		}
		slog.Error("delete expense", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Expense deleted successfully.",
	})
}

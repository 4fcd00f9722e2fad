package handler

import (
	"net/http"

	"github.com/mvess/spendlog/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, expenses *service.ExpenseService) {
	authHandler := NewAuthHandler(auth)
	expenseHandler := NewExpenseHandler(expenses)

	mux.HandleFunc("POST /signup", authHandler.HandleSignup)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)

	// Every expense route goes through the auth gate; handlers only ever see
	// the token-derived identity.
	mux.Handle("POST /expenses", RequireAuth(auth, http.HandlerFunc(expenseHandler.HandleCreate)))
	mux.Handle("GET /expenses", RequireAuth(auth, http.HandlerFunc(expenseHandler.HandleList)))
	mux.Handle("PUT /expenses/{id}", RequireAuth(auth, http.HandlerFunc(expenseHandler.HandleUpdate)))
	mux.Handle("DELETE /expenses/{id}", RequireAuth(auth, http.HandlerFunc(expenseHandler.HandleDelete)))

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /", HandleHome)
}

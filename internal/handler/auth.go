package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mvess/spendlog/internal/domain"
	"github.com/mvess/spendlog/internal/service"
)

// AuthHandler handles signup and login HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleSignup registers a new account.
// POST /signup
// Request:  {"username":"...","password":"..."}
// Response: 201 {"message":"..."}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	_, err := h.auth.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Username and password are required.")
			return
		}
		if errors.Is(err, domain.ErrDuplicateUsername) {
			writeError(w, http.StatusBadRequest, "Username already taken.")
			return
		}
		slog.Error("signup user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully.",
	})
}

// HandleLogin verifies credentials and issues a bearer token.
// POST /login
// Request:  {"username":"...","password":"..."}
// Response: 200 {"auth":true,"token":"..."}
// Unknown usernames and wrong passwords produce the same 401.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Username and password are required.")
			return
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		slog.Error("login user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"auth":  true,
		"token": token,
	})
}

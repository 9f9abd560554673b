package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/review-hub/internal/apperror"
	"github.com/sakif/review-hub/internal/auth"
	"github.com/sakif/review-hub/internal/service"
)

// AuthHandler exposes registration, login and the whoami endpoint.
//
// Handlers parse HTTP and delegate; every business rule (required fields,
// duplicate usernames, password verification) lives in the service.
type AuthHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse bundles the token with the user record. The user's hash
// never appears — model.User excludes it from JSON.
type loginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /auth/register
// 201 on success; 400 for missing fields, duplicate username, or duplicate
// email.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "Invalid JSON body"))
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.Warn("registration failed",
			slog.String("username", req.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleLogin verifies credentials and returns a bearer token.
//
// HTTP: POST /auth/login
// 200 with {token, user}; 400 for missing fields; 401 for an unknown user
// or a wrong password (indistinguishable on purpose).
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "Invalid JSON body"))
		return
	}

	result, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: result.Token,
		User:  result.User,
	})
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /auth/me (RequireAuth)
// 404 if the account vanished after the token was issued — tokens are
// stateless and outlive their user.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but be safe.
		writeError(w, apperror.Unauthenticated("Authentication token required"))
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), identity.ID)
	if err != nil {
		h.logger.Warn("whoami lookup failed",
			slog.Int64("userID", identity.ID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/rahat/streamvault/internal/auth"
	"github.com/rahat/streamvault/internal/service"
)

// AuthHandler exposes registration, login, and the current-user endpoint.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister → create the account, return a bearer token
//   - HandleLogin    → verify credentials, return a bearer token
//   - HandleMe       → return the authenticated user's record with profiles
//
// The handler parses and validates wire shapes; every business decision
// (duplicate email, credential check, token issuance) lives in AuthService.
type AuthHandler struct {
	authSvc *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected here;
// the handler has no knowledge of how they're constructed.
func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// tokenResponse is the wire shape of a successful register or login.
// token_type is always "bearer" — clients put the token in the
// Authorization header as "Bearer <access_token>".
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
}

// HandleRegister creates a new account and logs it straight in.
//
// HTTP: POST /api/auth/register
// BODY: {"email": ..., "password": ..., "full_name": ...}
//
// 201 with a token on success; 409 if the email is already registered.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.authSvc.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		UserID:      result.User.ID,
	})
}

// HandleLogin verifies credentials and issues a fresh 30-minute token.
//
// HTTP: POST /api/auth/login
//
// 401 on bad credentials — the same response whether the email is unknown
// or the password is wrong.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		UserID:      result.User.ID,
	})
}

// HandleMe returns the currently authenticated user's record, profiles
// included. The password hash is excluded by its json:"-" tag.
//
// HTTP: GET /api/auth/me
// Auth: Required (RequireAuth middleware sets userID in context)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	// Middleware has already verified the JWT on this route.
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Should never happen on a RequireAuth-protected route, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return
	}

	user, err := h.authSvc.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("HandleMe: user lookup failed", slog.String("userID", userID))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/campus-portal/internal/apperror"
	"github.com/sakif/campus-portal/internal/auth"
	"github.com/sakif/campus-portal/internal/service"
)

// AuthHandler exposes the authentication endpoints.
//
// HANDLER RESPONSIBILITIES:
//   - HandleSignup → register a new account and log it in
//   - HandleLogin  → exchange credentials for a bearer token
//   - HandleMe     → return the profile behind the presented token
//
// The handler only parses requests and shapes responses; every rule about
// emails, passwords, roles, and tokens lives in service.AuthService.
type AuthHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected here;
// the handler has no knowledge of how they're constructed.
func NewAuthHandler(authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// sessionPayload is the body of successful signup/login responses. The
// frontend stores the token in localStorage and sends it back as
// "Authorization: Bearer <token>".
type sessionPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    any    `json:"user"`
}

// HandleSignup registers a new user.
//
// HTTP: POST /api/auth/signup
// REQUEST BODY: {"name": "...", "email": "...", "password": "...", "role": "student"}
//
// RESPONSES:
//
//	201 {"success":true,"message":"User registered successfully","token":"...","user":{...}}
//	400 {"success":false,"errors":[{"field":"email","message":"..."}]}   (validation)
//	400 {"success":false,"message":"User with this email already exists"}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	session, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionPayload{
		Success: true,
		Message: "User registered successfully",
		Token:   session.Token,
		User:    session.User,
	})
}

// HandleLogin authenticates an existing user.
//
// HTTP: POST /api/auth/login
// REQUEST BODY: {"email": "...", "password": "..."}
//
// A wrong password and an unknown email both return the same 401 — the
// response never reveals which addresses have accounts.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionPayload{
		Success: true,
		Message: "Login successful",
		Token:   session.Token,
		User:    session.User,
	})
}

// HandleMe returns the currently authenticated user's profile.
//
// HTTP: GET /api/auth/me
// Auth: Required (RequireAuth middleware sets userID in context)
//
// Returns 404 if the token is valid but the account no longer exists —
// the frontend treats that as a forced logout.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Should never happen on a RequireAuth-protected route, but be safe.
		writeError(w, apperror.NotAuthorized())
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"user":    user,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/pkg/api/auth"
)

// Authenticator checks gateway account credentials.
type Authenticator interface {
	Authenticate(username, password string) error
}

// AuthHandler issues bearer tokens.
type AuthHandler struct {
	accounts Authenticator
	jwt      *auth.JWTService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(accounts Authenticator, jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{accounts: accounts, jwt: jwt}
}

// TokenRequest is the body of POST /auth/token.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token handles POST /auth/token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		BadRequest(w, "username and password are required")
		return
	}

	if err := h.accounts.Authenticate(req.Username, req.Password); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			logger.WarnCtx(r.Context(), "authentication failed", logger.Username(req.Username), logger.Err(err))
		}
		Unauthorized(w, "invalid username or password")
		return
	}

	tok, err := h.jwt.Issue(req.Username)
	if err != nil {
		logger.ErrorCtx(r.Context(), "token signing failed", logger.Err(err))
		InternalServerError(w, "failed to issue token")
		return
	}

	logger.InfoCtx(r.Context(), "token issued", logger.Username(req.Username))
	writeJSON(w, http.StatusOK, tok)
}

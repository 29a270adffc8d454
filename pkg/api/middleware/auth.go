package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/pkg/api/auth"
	"github.com/marmos91/sharefs/pkg/api/handlers"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// JWTAuth rejects requests without a valid bearer token. The validated
// claims are stored in the request context and the username is attached
// to the request's LogContext.
func JWTAuth(jwt *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				handlers.Unauthorized(w, "missing bearer token")
				return
			}

			claims, err := jwt.Validate(token)
			if err != nil {
				detail := "invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					detail = "token expired"
				}
				logger.DebugCtx(r.Context(), "token rejected", logger.Err(err))
				handlers.Unauthorized(w, detail)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			// Set in place so RequestLogger's completion line carries the user.
			if lc := logger.FromContext(ctx); lc != nil {
				lc.Username = claims.Username
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext returns the claims stored by JWTAuth, or nil.
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

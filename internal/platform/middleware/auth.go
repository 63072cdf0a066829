package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type usernameKey struct{}

// Username retrieves the authenticated caller's username from the context.
// Handlers pass this value explicitly into services; services never read it
// from ambient state themselves.
func Username(ctx context.Context) string {
	if v, ok := ctx.Value(usernameKey{}).(string); ok {
		return v
	}
	return ""
}

// WithUsername injects a username, used by tests that bypass the middleware.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

type authClaims struct {
	Username string `json:"user_name"`
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// RequireAuth verifies the bearer token and resolves the acting identity: a
// human username when present, otherwise the client id for machine-originated
// calls (sync and merge messages arrive without a user).
func RequireAuth(signingKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	key := []byte(signingKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims := &authClaims{}
			token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims,
				func(t *jwt.Token) (any, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, jwt.ErrTokenUnverifiable
					}
					return key, nil
				})
			if err != nil || !token.Valid {
				logger.WarnContext(r.Context(), "rejected bearer token", "error", err)
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			username := claims.Username
			if username == "" {
				username = claims.ClientID
			}
			if username == "" {
				http.Error(w, "token carries no identity", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
		})
	}
}

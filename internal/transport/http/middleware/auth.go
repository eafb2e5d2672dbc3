package middleware

import (
	"context"
	"net/http"
	"strings"

	"evalx/internal/domain/auth"
	"evalx/internal/transport/http/api"
)

// Identity is the authenticated principal attached to the request context
// by the gateway.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// Auth is the gateway: it parses and verifies a bearer token when one is
// present and attaches the decoded identity. Requests without a usable
// token continue anonymously; RequireAuth decides whether that is fatal.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyIdentity, Identity{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return identity, ok
}

// RequireAuth rejects requests that reached a protected route without a
// verified identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "Access denied. No valid token provided.", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

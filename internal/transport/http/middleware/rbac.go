package middleware

import (
	"net/http"

	"evalx/internal/domain/auth"
	"evalx/internal/transport/http/api"
)

// RequireRole is the role guard: it runs strictly after the gateway and
// rejects identities of any other role with 403.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "Access denied. No valid token provided.", GetRequestID(r.Context()))
				return
			}
			if identity.Role != role {
				api.Fail(w, http.StatusForbidden, roleDeniedMessage(role), GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireManager(next http.Handler) http.Handler {
	return RequireRole(auth.RoleManager)(next)
}

func RequireEmployee(next http.Handler) http.Handler {
	return RequireRole(auth.RoleEmployee)(next)
}

func roleDeniedMessage(role string) string {
	if role == auth.RoleManager {
		return "Access denied. Managers only."
	}
	return "Access denied. Employees only."
}

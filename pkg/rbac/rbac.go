// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/kicksup/kicksup/pkg/middleware"
	"github.com/kicksup/kicksup/pkg/response"
)

// HasRole allows only callers whose role is one of roles. It must run after
// middleware.AuthMiddleware; an unauthenticated request gets 401, an
// authenticated one with the wrong role gets 403.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok {
				response.Unauthorized(w)
				return
			}
			if !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kicksup/kicksup/pkg/auth"
	"github.com/kicksup/kicksup/pkg/logger"
	"github.com/kicksup/kicksup/pkg/response"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	usernameKey
	roleKey
)

// AuthMiddleware requires a valid bearer token and stores the caller's
// identity in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			response.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := auth.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			logger.WithCtx(r.Context()).Debug("token rejected", "error", err)
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		id, _ := claims.UserID()
		ctx := WithIdentity(r.Context(), id, claims.Username, claims.Role)
		ctx = logger.InjectLogger(ctx, logger.WithCtx(ctx).With("user_id", id.String()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity stores an authenticated identity in ctx.
func WithIdentity(ctx context.Context, id uuid.UUID, username, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	ctx = context.WithValue(ctx, usernameKey, username)
	return context.WithValue(ctx, roleKey, role)
}

func UserIDFromCtx(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(userIDKey).(uuid.UUID)
	return id, ok
}

func UsernameFromCtx(r *http.Request) (string, bool) {
	name, ok := r.Context().Value(usernameKey).(string)
	return name, ok
}

func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey).(string)
	return role, ok
}

package middleware

import (
	"context"
	"net/http"

	"notarynow/pkg/config"
)

const (
	UserIDHeader   = "X-User-ID"
	UserRoleHeader = "X-User-Role"
)

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "user_role"
)

// Identity reads the caller identity propagated by the API gateway. Requests
// without both headers are rejected before they reach a handler; the gateway
// is trusted to have authenticated the user.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		role := config.Role(r.Header.Get(UserRoleHeader))

		if userID == "" || !role.Valid() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Missing or invalid caller identity"}`))
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, UserRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerID returns the authenticated user ID from the request context.
func CallerID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// CallerRole returns the authenticated role from the request context.
func CallerRole(ctx context.Context) config.Role {
	if role, ok := ctx.Value(UserRoleKey).(config.Role); ok {
		return role
	}
	return ""
}

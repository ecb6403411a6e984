package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/dstone/movie-club-server/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey  contextKey = "userID"
	IsAdminKey contextKey = "isAdmin"
)

func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			userIDStr, ok := (*claims)["sub"].(string)
			if !ok {
				log.Printf("ERROR [middleware.Auth] missing 'sub' claim in token")
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] failed to parse user ID: %v", err)
				http.Error(w, "Invalid user ID", http.StatusUnauthorized)
				return
			}

			isAdmin, _ := (*claims)["admin"].(bool)

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, IsAdminKey, isAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only routes. The admin flag is re-checked against
// the user row, not just the token claim, so revoking admin takes effect
// before the token expires.
func RequireAdmin(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := authService.GetUserByID(r.Context(), userID)
			if err != nil || !user.IsAdmin {
				log.Printf("ERROR [middleware.RequireAdmin] user %s is not an admin", userID)
				http.Error(w, "Admin access required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func IsAdmin(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(IsAdminKey).(bool)
	return isAdmin
}

package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"elibrary/internal/app/service"
	"elibrary/internal/common"
	"elibrary/internal/common/security"
	"elibrary/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UserRoleCtxKey contextKey = "userRole"
)

// Authenticator requires a valid, unrevoked session token (bearer header or
// cookie) and stashes the requester's identity in the request context.
func Authenticator(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil || token == nil {
				if err != nil && !strings.Contains(err.Error(), "token not found") {
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
				} else {
					common.RespondWithError(w, http.StatusUnauthorized, "Authorization required")
				}
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}
			userRole, err := security.GetUserRoleFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}

			// A signed-out token is as good as no token. Store errors fail
			// open; see AuthService.IsSessionRevoked.
			if jti, err := security.GetJTIFromClaims(claims); err == nil {
				revoked, err := authService.IsSessionRevoked(r.Context(), jti)
				if err != nil {
					log.Printf("revocation check failed for %s: %v", jti, err)
				} else if revoked {
					common.RespondWithError(w, http.StatusUnauthorized, "Session expired")
					return
				}
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
			ctx = context.WithValue(ctx, UserRoleCtxKey, userRole)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(UserRoleCtxKey).(string)
		if !ok || role != model.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// Helper to get user role from context
func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	userRole, ok := ctx.Value(UserRoleCtxKey).(string)
	return userRole, ok
}

// RequesterFromContext bundles the identity the Authenticator stored.
func RequesterFromContext(ctx context.Context) (service.Requester, bool) {
	id, okID := GetUserIDFromContext(ctx)
	role, okRole := GetUserRoleFromContext(ctx)
	return service.Requester{ID: id, Role: role}, okID && okRole
}

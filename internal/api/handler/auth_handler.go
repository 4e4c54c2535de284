package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"elibrary/internal/app/service"
	"elibrary/internal/common"
	"elibrary/internal/common/security"
	"elibrary/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

// sessionCookie is the name jwtauth.TokenFromCookie looks for.
const sessionCookie = "jwt"

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/sign-in", h.signIn)
	r.Post("/sign-out", h.signOut)
	r.Get("/auth/status", h.authStatus)
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request) {
	var req service.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	session, err := h.authService.SignIn(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Sign-in successful",
		"user": map[string]string{
			"id":    session.User.ID,
			"email": session.User.Email,
			"role":  session.User.Role,
		},
	})
}

// signOut always succeeds from the client's point of view: the cookie is
// cleared even if the revocation store is unavailable.
func (h *AuthHandler) signOut(w http.ResponseWriter, r *http.Request) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err == nil && token != nil {
		if jti, jtiErr := security.GetJTIFromClaims(claims); jtiErr == nil {
			if revErr := h.authService.SignOut(r.Context(), jti, token.Expiration()); revErr != nil {
				log.Printf("sign-out revocation failed: %v", revErr)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

type authStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
	IsAdmin       bool   `json:"isAdmin,omitempty"`
}

// authStatus is the identity probe the browser scripts poll. It never fails:
// any problem with the token simply reads as unauthenticated.
func (h *AuthHandler) authStatus(w http.ResponseWriter, r *http.Request) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		common.RespondWithJSON(w, http.StatusOK, authStatusResponse{Authenticated: false})
		return
	}

	userID, idErr := security.GetUserIDFromClaims(claims)
	role, roleErr := security.GetUserRoleFromClaims(claims)
	if idErr != nil || roleErr != nil {
		common.RespondWithJSON(w, http.StatusOK, authStatusResponse{Authenticated: false})
		return
	}

	if jti, jtiErr := security.GetJTIFromClaims(claims); jtiErr == nil {
		revoked, revErr := h.authService.IsSessionRevoked(r.Context(), jti)
		if revErr != nil {
			log.Printf("revocation check failed for %s: %v", jti, revErr)
		} else if revoked {
			common.RespondWithJSON(w, http.StatusOK, authStatusResponse{Authenticated: false})
			return
		}
	}

	email, _ := security.GetEmailFromClaims(claims)
	common.RespondWithJSON(w, http.StatusOK, authStatusResponse{
		Authenticated: true,
		UserID:        userID,
		Email:         email,
		Role:          role,
		IsAdmin:       role == model.RoleAdmin,
	})
}

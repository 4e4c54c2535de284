package handler

import (
	"net/http"

	"elibrary/internal/common"

	"github.com/go-chi/chi/v5"
)

type InfoHandler struct{}

func NewInfoHandler() *InfoHandler {
	return &InfoHandler{}
}

func (h *InfoHandler) RegisterRoutes(r chi.Router) {
	r.Get("/info", h.info)
}

// info is the static capability descriptor the original API advertised.
func (h *InfoHandler) info(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"project":     "E-Library",
		"description": "REST API for managing books",
		"endpoints": map[string]string{
			"getAll":     "GET /api/books",
			"getById":    "GET /api/books/:id",
			"create":     "POST /api/books",
			"update":     "PUT /api/books/:id",
			"delete":     "DELETE /api/books/:id",
			"signIn":     "POST /api/sign-in",
			"signOut":    "POST /api/sign-out",
			"authStatus": "GET /api/auth/status",
		},
	})
}

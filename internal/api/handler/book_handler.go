package handler

import (
	"encoding/json"
	"net/http"

	"elibrary/internal/api/middleware"
	"elibrary/internal/app/query"
	"elibrary/internal/app/service"
	"elibrary/internal/common"

	"github.com/go-chi/chi/v5"
)

type BookHandler struct {
	bookService *service.BookService
}

func NewBookHandler(bookService *service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// RegisterRoutes mounts the catalog. Reads are public; every mutation goes
// through the session authenticator.
func (h *BookHandler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/", h.listBooks)       // GET /api/books
	r.Get("/{bookID}", h.getBook) // GET /api/books/:id

	r.Group(func(authed chi.Router) {
		authed.Use(requireAuth)
		authed.Post("/", h.createBook)
		authed.Put("/{bookID}", h.updateBook)
		authed.Delete("/{bookID}", h.deleteBook)
	})
}

func (h *BookHandler) listBooks(w http.ResponseWriter, r *http.Request) {
	spec := query.Parse(r.URL.Query())

	books, err := h.bookService.List(r.Context(), spec)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	if len(spec.Fields) == 0 {
		common.RespondWithJSON(w, http.StatusOK, books)
		return
	}
	docs := make([]map[string]interface{}, 0, len(books))
	for i := range books {
		docs = append(docs, query.Project(&books[i], spec.Fields))
	}
	common.RespondWithJSON(w, http.StatusOK, docs)
}

func (h *BookHandler) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookService.Get(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, book)
}

func (h *BookHandler) createBook(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	in, err := decodeBookInput(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	book, err := h.bookService.Create(r.Context(), in, requester)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) updateBook(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	in, err := decodeBookInput(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if _, err := h.bookService.Update(r.Context(), chi.URLParam(r, "bookID"), in, requester); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Book updated successfully"})
}

func (h *BookHandler) deleteBook(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.bookService.Delete(r.Context(), chi.URLParam(r, "bookID"), requester); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Book deleted successfully"})
}

// decodeBookInput enforces the payload schema strictly: unknown keys and
// wrongly typed fields are a 400 before any service logic runs.
func decodeBookInput(r *http.Request) (service.BookInput, error) {
	var in service.BookInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return service.BookInput{}, err
	}
	return in, nil
}

package api

import (
	"net/http"
	"time"

	"elibrary/internal/api/handler"
	"elibrary/internal/api/middleware"
	"elibrary/internal/app/service"
	"elibrary/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	bookService *service.BookService,
	contactService *service.ContactService,
	webDir string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Token verification only; it accepts the session from either the
	// Authorization header or the jwt cookie and leaves enforcement to the
	// Authenticator on routes that need it.
	r.Use(jwtauth.Verify(security.TokenAuth, jwtauth.TokenFromHeader, jwtauth.TokenFromCookie))

	requireAuth := middleware.Authenticator(authService)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(apiRouter chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		authHandler.RegisterRoutes(apiRouter)

		infoHandler := handler.NewInfoHandler()
		infoHandler.RegisterRoutes(apiRouter)

		bookHandler := handler.NewBookHandler(bookService)
		apiRouter.Route("/books", func(booksRouter chi.Router) {
			bookHandler.RegisterRoutes(booksRouter, requireAuth)
		})
	})

	// Server-rendered pages, static assets, contact form
	pagesHandler := handler.NewPagesHandler(webDir, contactService)
	pagesHandler.RegisterRoutes(r)

	// Global 404: JSON under /api, HTML everywhere else
	r.NotFound(handler.NotFound)

	return r
}

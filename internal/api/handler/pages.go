package handler

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"elibrary/internal/app/service"
	"elibrary/internal/common"

	"github.com/go-chi/chi/v5"
)

// fragmentTmpl renders the small styled HTML pages (errors, search results,
// contact confirmation). Going through html/template means user input is
// escaped instead of interpolated raw.
var fragmentTmpl = template.Must(template.New("fragment").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="/public/style.css">
</head>
<body>
  <div class="container">
    <h2>{{.Heading}}</h2>
    {{range .Lines}}<p>{{.}}</p>
    {{end}}<a href="{{.BackHref}}" class="btn">{{.BackLabel}}</a>
  </div>
</body>
</html>
`))

type fragment struct {
	Title     string
	Heading   string
	Lines     []template.HTML
	BackHref  string
	BackLabel string
}

func renderFragment(w http.ResponseWriter, code int, f fragment) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := fragmentTmpl.Execute(w, f); err != nil {
		log.Printf("render fragment: %v", err)
	}
}

func textLines(lines ...string) []template.HTML {
	out := make([]template.HTML, 0, len(lines))
	for _, l := range lines {
		out = append(out, template.HTML(template.HTMLEscapeString(l)))
	}
	return out
}

// PagesHandler serves the pre-built views and static assets, plus the
// contact form and the HTML search echo.
type PagesHandler struct {
	webDir         string
	contactService *service.ContactService
}

func NewPagesHandler(webDir string, contactService *service.ContactService) *PagesHandler {
	return &PagesHandler{webDir: webDir, contactService: contactService}
}

func (h *PagesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.view("index.html"))
	r.Get("/library", h.view("library.html"))
	r.Get("/about", h.view("team.html"))
	r.Get("/contact", h.view("contact.html"))
	r.Get("/sign-in", h.view("sign-in.html"))
	r.Get("/search", h.search)
	r.Post("/contact", h.submitContact)

	assets := http.StripPrefix("/public/", http.FileServer(http.Dir(filepath.Join(h.webDir, "public"))))
	r.Get("/public/*", assets.ServeHTTP)
}

func (h *PagesHandler) view(name string) http.HandlerFunc {
	path := filepath.Join(h.webDir, "views", name)
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}

func (h *PagesHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		renderFragment(w, http.StatusBadRequest, fragment{
			Title:     "Error 400",
			Heading:   "Error 400",
			Lines:     textLines(`Missing required query parameter "q".`),
			BackHref:  "/",
			BackLabel: "Go back",
		})
		return
	}
	renderFragment(w, http.StatusOK, fragment{
		Title:     "Search Results",
		Heading:   "Search Results",
		Lines:     textLines("You searched for: " + q),
		BackHref:  "/",
		BackLabel: "New search",
	})
}

func (h *PagesHandler) submitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderFragment(w, http.StatusBadRequest, fragment{
			Title:     "Error",
			Heading:   "Error: Invalid form submission",
			BackHref:  "/contact",
			BackLabel: "Go back",
		})
		return
	}

	in := service.ContactInput{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}

	contact, err := h.contactService.Append(r.Context(), in)
	if err != nil {
		if common.HTTPStatusFromError(err) == http.StatusBadRequest {
			renderFragment(w, http.StatusBadRequest, fragment{
				Title:     "Error",
				Heading:   "Error: Missing required fields",
				Lines:     textLines("All fields (name, email, message) are required."),
				BackHref:  "/contact",
				BackLabel: "Go back",
			})
			return
		}
		log.Printf("contact submission failed: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	renderFragment(w, http.StatusOK, fragment{
		Title:   "Thank you",
		Heading: "Thanks, " + contact.Name + "! Your message has been received.",
		Lines: textLines(
			"Email: "+contact.Email,
			"Message: "+contact.Message,
		),
		BackHref:  "/contact",
		BackLabel: "Go back",
	})
}

// NotFound splits the global 404 contract: JSON for API routes, a styled
// page for everything else.
func NotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		common.RespondWithError(w, http.StatusNotFound, "API endpoint does not exist")
		return
	}
	renderFragment(w, http.StatusNotFound, fragment{
		Title:     "404 — Page Not Found",
		Heading:   "404 — Page Not Found",
		Lines:     textLines("Sorry, the page you are looking for doesn't exist."),
		BackHref:  "/",
		BackLabel: "Go to Home",
	})
}

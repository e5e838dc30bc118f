package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"visionchat/internal/handlers"
	"visionchat/internal/service"
	"visionchat/internal/web"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService service.ChatService
	Pages       *web.Pages
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	r.Method(http.MethodPost, "/chat", chatHandler)
	r.Method(http.MethodGet, "/health", handlers.NewHealthHandler())

	if deps.Pages != nil {
		r.Get("/", servePage(deps.Pages.Index))
		r.Get("/about", servePage(deps.Pages.About))
		r.Get("/contact", servePage(deps.Pages.Contact))
	}

	return r
}

// servePage serves a pre-rendered HTML page.
func servePage(html string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	}
}

package httpserver

import (
	"log/slog"
	"net/http"

	"storyteller/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type RouterDeps struct {
	Logger         *slog.Logger
	StoryHandler   http.Handler
	MetricsHandler http.Handler
	Observer       middleware.RequestObserver
}

// NewRouter собирает chi-роутер с общими middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(deps.Logger, deps.Observer))
	r.Use(middleware.Recover(deps.Logger))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Method(http.MethodPost, "/generate_story", deps.StoryHandler)

	return r
}

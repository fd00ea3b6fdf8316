package story

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"storyteller/internal/httpserver"
	"storyteller/internal/middleware"
)

const maxFormBytes = 1 << 20

// Исходы запроса для метрик.
const (
	OutcomeOK            = "ok"
	OutcomeBadRequest    = "bad_request"
	OutcomeUpstreamError = "upstream_error"
	OutcomeInvalidStory  = "invalid_story"
)

type Generator interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

type RequestObserver interface {
	ObserveStoryRequest(outcome string)
}

type HandlerDeps struct {
	Generator Generator
	Logger    *slog.Logger
	Observer  RequestObserver
}

type Handler struct {
	generator Generator
	logger    *slog.Logger
	observer  RequestObserver
}

type response struct {
	Story string `json:"story"`
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		generator: deps.Generator,
		logger:    deps.Logger,
		observer:  deps.Observer,
	}
}

// ServeHTTP обрабатывает POST /generate_story с телом формы.
// В ответе поле story содержит ответ модели без изменений.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := parseBody(r); err != nil {
		h.observe(OutcomeBadRequest)
		httpserver.WriteJSONError(w, http.StatusBadRequest, httpserver.CodeBadRequest, "cannot parse form body")
		return
	}

	ctx := r.Context()
	result, err := h.generator.Generate(ctx, ParseForm(r.PostForm))
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	if result.Parsed != nil && h.logger != nil {
		h.logger.DebugContext(ctx, "story accepted",
			slog.String("title", result.Parsed.Title),
			slog.String("request_id", middleware.RequestIDFromContext(ctx)),
		)
	}

	h.observe(OutcomeOK)
	httpserver.WriteJSON(w, http.StatusOK, response{Story: result.Story})
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidStory) {
		h.observe(OutcomeInvalidStory)
		httpserver.WriteJSONError(w, http.StatusBadGateway, httpserver.CodeInvalidStory, "model reply is not a valid story")
		return
	}

	// Причина уже залогирована на уровне Service и RetryingClient.
	h.observe(OutcomeUpstreamError)
	if h.logger != nil {
		h.logger.DebugContext(ctx, "story generation failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(ctx)),
		)
	}
	httpserver.WriteJSONError(w, http.StatusInternalServerError, httpserver.CodeUpstreamError, "story generation failed")
}

func (h *Handler) observe(outcome string) {
	if h.observer != nil {
		h.observer.ObserveStoryRequest(outcome)
	}
}

// parseBody заполняет r.PostForm для urlencoded и multipart тел.
// Для остальных типов PostForm остаётся пустым, как будто поля не переданы.
func parseBody(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxFormBytes)
	}
	return r.ParseForm()
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storyteller/internal/retry"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrInvalidModel    = errors.New("model is required")
	ErrEmptyCompletion = errors.New("model returned no choices")
)

// Message одно сообщение чата в формате chat completions.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client минимальный интерфейс провайдера completions: один вызов, сырой текст ответа.
type Client interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

// StatusError ответ провайдера с кодом вне 2xx.
type StatusError struct {
	StatusCode  int
	BodySnippet string
	retryAfter  time.Duration
	hasRetry    bool
}

func (e *StatusError) Error() string {
	if e.BodySnippet == "" {
		return fmt.Sprintf("upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.BodySnippet)
}

func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

func (e *StatusError) RetryAfter() (time.Duration, bool) {
	return e.retryAfter, e.hasRetry
}

const snippetLimit = 200

func newStatusError(status int, header http.Header, body []byte) *StatusError {
	snippet := string(body)
	if len(snippet) > snippetLimit {
		snippet = snippet[:snippetLimit]
	}
	d, ok := retry.ParseRetryAfter(header, time.Now())
	return &StatusError{
		StatusCode:  status,
		BodySnippet: snippet,
		retryAfter:  d,
		hasRetry:    ok,
	}
}

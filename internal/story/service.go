package story

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"storyteller/internal/llm"
	"storyteller/internal/session"
)

// Observer получает метрики вызовов модели. Может быть nil.
type Observer interface {
	ObserveCompletion(d time.Duration, err error)
	SetHistoryTurns(n int)
}

// Result сырой ответ модели. Parsed заполнен только в строгом режиме.
type Result struct {
	Story  string
	Parsed *Story
}

// Service собирает промпт из запроса и окна истории и делает ровно один вызов модели.
type Service struct {
	client   llm.Client
	buffer   *session.Buffer
	model    string
	strict   bool
	logger   *slog.Logger
	observer Observer
}

// ServiceConfig конфигурация для создания Service.
type ServiceConfig struct {
	Client   llm.Client
	Buffer   *session.Buffer
	Model    string
	Strict   bool
	Logger   *slog.Logger
	Observer Observer
}

func NewService(cfg ServiceConfig) *Service {
	buffer := cfg.Buffer
	if buffer == nil {
		buffer = session.NewBuffer(session.DefaultWindow)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		client:   cfg.Client,
		buffer:   buffer,
		model:    cfg.Model,
		strict:   cfg.Strict,
		logger:   logger,
		observer: cfg.Observer,
	}
}

// Generate генерирует историю.
// Сообщения: системная директива, затем окно истории (user/assistant по очереди),
// затем новая инструкция. При успехе пара (инструкция, ответ) пишется в окно.
// При ошибке окно не меняется.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	instruction := BuildInstruction(req)
	history := s.buffer.Replay()

	messages := make([]llm.Message, 0, 2*len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: SystemDirective})
	for _, turn := range history {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: turn.Human},
			llm.Message{Role: llm.RoleAssistant, Content: turn.Reply},
		)
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: instruction})

	s.logger.DebugContext(ctx, "completion request",
		slog.String("model", s.model),
		slog.Int("history_turns", len(history)),
		slog.Int("prompt_len", len(instruction)),
	)

	start := time.Now()
	reply, err := s.client.Complete(ctx, s.model, messages)
	elapsed := time.Since(start)
	if s.observer != nil {
		s.observer.ObserveCompletion(elapsed, err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "completion failed",
			slog.String("model", s.model),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()),
		)
		return Result{}, fmt.Errorf("complete story: %w", err)
	}

	result := Result{Story: reply}
	if s.strict {
		parsed, err := ParseStory(reply)
		if err != nil {
			s.logger.WarnContext(ctx, "story reply rejected", slog.String("error", err.Error()))
			return Result{}, err
		}
		result.Parsed = &parsed
	}

	s.buffer.Record(session.Turn{Human: instruction, Reply: reply, At: time.Now()})
	if s.observer != nil {
		s.observer.SetHistoryTurns(s.buffer.Len())
	}

	s.logger.DebugContext(ctx, "completion done",
		slog.Duration("duration", elapsed),
		slog.Int("reply_len", len(reply)),
	)
	return result, nil
}

package llm

import (
	"context"
	"log/slog"

	"storyteller/internal/retry"
)

// RetryingClient повторяет запросы к next по политике retry.
// При MaxAttempts == 1 это просто прокси.
type RetryingClient struct {
	next   Client
	policy retry.Policy
	logger *slog.Logger
}

func NewRetryingClient(next Client, policy retry.Policy, logger *slog.Logger) *RetryingClient {
	return &RetryingClient{
		next:   next,
		policy: policy,
		logger: logger,
	}
}

func (c *RetryingClient) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	var answer string
	err := retry.Do(ctx, c.policy, c.logger, func(ctx context.Context) error {
		var err error
		answer, err = c.next.Complete(ctx, model, messages)
		return err
	})
	if err != nil {
		return "", err
	}
	return answer, nil
}

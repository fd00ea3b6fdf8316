package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"storyteller/internal/config"
	"storyteller/internal/llm"
	"storyteller/internal/observability"
	"storyteller/internal/retry"
	"storyteller/internal/session"
	"storyteller/internal/story"
	"storyteller/internal/transport"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "storyteller",
		Short:         "Story generation service backed by a hosted LLM",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "path to an env file (default: ./.env if present)")

	loadConfig := func() (config.Config, error) {
		if envFile != "" {
			return config.LoadFile(envFile)
		}
		return config.Load()
	}

	serve := newServeCmd(loadConfig)
	root.AddCommand(serve, newGenerateCmd(loadConfig))
	// Без подкоманды запускаем сервер, как раньше.
	root.RunE = serve.RunE

	return root
}

// app зависимости, общие для serve и generate.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	buffer  *session.Buffer
	service *story.Service
}

func newApp(cfg config.Config, logOut io.Writer) *app {
	logger := newLogger(cfg.LogLevel, logOut)
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	if !llm.IsKnownModel(cfg.Groq.Model) {
		logger.Warn("model is not in the known catalog", slog.String("model", cfg.Groq.Model))
	}

	httpClient := transport.NewHTTPClient(cfg.RequestTimeout)

	var client llm.Client
	switch cfg.Groq.Client {
	case config.ClientHTTP:
		client = llm.NewHTTPClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, httpClient)
	default:
		client = llm.NewSDKClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, httpClient)
	}

	policy := retry.DefaultPolicy()
	policy.MaxAttempts = cfg.Groq.MaxAttempts
	client = llm.NewRetryingClient(client, policy, logger)

	buffer := session.NewBuffer(cfg.HistoryWindow)
	service := story.NewService(story.ServiceConfig{
		Client:   client,
		Buffer:   buffer,
		Model:    cfg.Groq.Model,
		Strict:   cfg.StrictStory,
		Logger:   logger,
		Observer: metrics,
	})

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		buffer:  buffer,
		service: service,
	}
}

func newLogger(level string, out io.Writer) *slog.Logger {
	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slogLevel}))
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storyteller/internal/config"
	"storyteller/internal/httpserver"
	"storyteller/internal/llm"
	"storyteller/internal/story"

	"github.com/spf13/cobra"
)

func newServeCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a := newApp(cfg, os.Stdout)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	handler := story.NewHandler(story.HandlerDeps{
		Generator: a.service,
		Logger:    a.logger,
		Observer:  a.metrics,
	})

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Logger:         a.logger,
		StoryHandler:   handler,
		MetricsHandler: a.metrics.Handler(),
		Observer:       a.metrics,
	})

	// WriteTimeout должен покрывать полный вызов модели.
	server := &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: a.cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting",
			slog.String("addr", a.cfg.HTTPAddr),
			slog.String("model", a.cfg.Groq.Model),
			slog.String("model_name", llm.GetModelName(a.cfg.Groq.Model)),
			slog.Int("history_window", a.buffer.Capacity()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server failed", slog.String("error", err.Error()))
			errCh <- err
			cancel()
		}
	}()

	<-ctx.Done()
	a.logger.Info("shutdown initiated")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("server stopped")

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var allKeys = []string{
	"HTTP_ADDR", "PORT", "LOG_LEVEL", "METRICS_NAMESPACE", "HTTP_CLIENT_TIMEOUT",
	"HISTORY_WINDOW", "STORY_STRICT", "LLM_MAX_ATTEMPTS", "GROQ_KEY",
	"GROQ_BASE_URL", "GROQ_MODEL", "LLM_CLIENT",
}

func unsetEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaults(t *testing.T) {
	unsetEnv(t)

	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:5000" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
	if cfg.HistoryWindow != 5 {
		t.Fatalf("expected window 5, got %d", cfg.HistoryWindow)
	}
	if cfg.Groq.Model != "llama3-70b-8192" {
		t.Fatalf("unexpected model: %s", cfg.Groq.Model)
	}
	if cfg.Groq.BaseURL != "https://api.groq.com/openai/v1" {
		t.Fatalf("unexpected base url: %s", cfg.Groq.BaseURL)
	}
	if cfg.Groq.Client != ClientSDK {
		t.Fatalf("unexpected client: %s", cfg.Groq.Client)
	}
	if cfg.Groq.MaxAttempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", cfg.Groq.MaxAttempts)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.RequestTimeout)
	}
	if cfg.StrictStory {
		t.Fatalf("strict mode must be off by default")
	}
}

func TestPortAndOverrides(t *testing.T) {
	unsetEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("GROQ_KEY", "secret")
	t.Setenv("GROQ_BASE_URL", "http://localhost:9000/v1/")
	t.Setenv("LLM_CLIENT", "HTTP")
	t.Setenv("HISTORY_WINDOW", "3")
	t.Setenv("STORY_STRICT", "true")
	t.Setenv("LLM_MAX_ATTEMPTS", "4")

	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:8081" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
	if cfg.Groq.APIKey != "secret" {
		t.Fatalf("unexpected key: %s", cfg.Groq.APIKey)
	}
	if cfg.Groq.BaseURL != "http://localhost:9000/v1" {
		t.Fatalf("trailing slash must be trimmed, got %s", cfg.Groq.BaseURL)
	}
	if cfg.Groq.Client != ClientHTTP {
		t.Fatalf("unexpected client: %s", cfg.Groq.Client)
	}
	if cfg.HistoryWindow != 3 || !cfg.StrictStory || cfg.Groq.MaxAttempts != 4 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestHTTPAddrWinsOverPort(t *testing.T) {
	unsetEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("HTTP_ADDR", "127.0.0.1:7000")

	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:7000" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                "abc",
		"HISTORY_WINDOW":      "0",
		"STORY_STRICT":        "maybe",
		"LLM_MAX_ATTEMPTS":    "-1",
		"HTTP_CLIENT_TIMEOUT": "soon",
		"LLM_CLIENT":          "grpc",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			unsetEnv(t)
			t.Setenv(key, value)
			if _, err := fromEnv(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	unsetEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("GROQ_KEY=from-file\nHISTORY_WINDOW=2\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("GROQ_KEY")
		os.Unsetenv("HISTORY_WINDOW")
	})

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Groq.APIKey != "from-file" || cfg.HistoryWindow != 2 {
		t.Fatalf("env file not applied: %+v", cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Fatalf("expected error for missing env file")
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ClientSDK  = "sdk"
	ClientHTTP = "http"
)

type Config struct {
	HTTPAddr         string
	LogLevel         string
	MetricsNamespace string
	RequestTimeout   time.Duration
	HistoryWindow    int
	StrictStory      bool
	Groq             GroqConfig
}

type GroqConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Client      string
	MaxAttempts int
}

// Load читает конфигурацию из окружения. Если рядом лежит .env, его значения
// подхватываются, но уже выставленные переменные окружения не перетираются.
func Load() (Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

// LoadFile то же самое, что Load, но с явным путём до env-файла.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil {
		return Config{}, fmt.Errorf("load env file %s: %w", path, err)
	}
	return fromEnv()
}

func fromEnv() (Config, error) {
	var cfg Config

	cfg.HTTPAddr = getEnv("HTTP_ADDR", "")
	if cfg.HTTPAddr == "" {
		port, err := parseIntDefault(getEnv("PORT", ""), 5000)
		if err != nil {
			return Config{}, fmt.Errorf("parse PORT: %w", err)
		}
		cfg.HTTPAddr = fmt.Sprintf("0.0.0.0:%d", port)
	}
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.MetricsNamespace = getEnv("METRICS_NAMESPACE", "storyteller")

	reqTimeout, err := parseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = reqTimeout

	window, err := parseIntDefault(getEnv("HISTORY_WINDOW", ""), 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse HISTORY_WINDOW: %w", err)
	}
	if window <= 0 {
		return Config{}, fmt.Errorf("HISTORY_WINDOW must be positive, got %d", window)
	}
	cfg.HistoryWindow = window

	strict, err := parseBoolDefault(getEnv("STORY_STRICT", ""), false)
	if err != nil {
		return Config{}, fmt.Errorf("parse STORY_STRICT: %w", err)
	}
	cfg.StrictStory = strict

	attempts, err := parseIntDefault(getEnv("LLM_MAX_ATTEMPTS", ""), 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse LLM_MAX_ATTEMPTS: %w", err)
	}
	if attempts <= 0 {
		return Config{}, fmt.Errorf("LLM_MAX_ATTEMPTS must be positive, got %d", attempts)
	}

	// Ключ не проверяем: без него упадёт первый же запрос к API.
	cfg.Groq = GroqConfig{
		APIKey:      getEnv("GROQ_KEY", ""),
		BaseURL:     strings.TrimRight(getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"), "/"),
		Model:       getEnv("GROQ_MODEL", "llama3-70b-8192"),
		Client:      strings.ToLower(getEnv("LLM_CLIENT", ClientSDK)),
		MaxAttempts: attempts,
	}
	switch cfg.Groq.Client {
	case ClientSDK, ClientHTTP:
	default:
		return Config{}, fmt.Errorf("unknown LLM_CLIENT %q", cfg.Groq.Client)
	}
	if cfg.Groq.Model == "" {
		return Config{}, fmt.Errorf("GROQ_MODEL is empty")
	}

	return cfg, nil
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("duration is empty")
	}
	return time.ParseDuration(value)
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

// parseBoolDefault parses optional boolean with default value.
func parseBoolDefault(value string, def bool) (bool, error) {
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, err
	}
	return parsed, nil
}

func parseIntDefault(value string, def int) (int, error) {
	if value == "" {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(value))
}

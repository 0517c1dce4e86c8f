package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/clinicalqa/vera/sse"
)

// Config holds settings read from the environment. Flags override some of
// them after loading.
type Config struct {
	Endpoint        string        `env:"VERA_ENDPOINT"`
	Backend         string        `env:"VERA_BACKEND" envDefault:"sse"`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	AnthropicAPIKey string        `env:"ANTHROPIC_API_KEY"`
	Model           string        `env:"VERA_MODEL"`
	UpdateInterval  time.Duration `env:"VERA_UPDATE_INTERVAL" envDefault:"100ms"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile         string        `env:"LOG_FILE"`
	HistoryPath     string        `env:"VERA_HISTORY"`
}

// loadConfig parses cfg from environ, a map of variable names to values.
func loadConfig(environ map[string]string) (Config, error) {
	cfg := Config{Endpoint: sse.DefaultEndpoint}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

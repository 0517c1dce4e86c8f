package main

import (
	"context"
	"fmt"

	"github.com/clinicalqa/vera"
	"github.com/clinicalqa/vera/anthropic"
	"github.com/clinicalqa/vera/gemini"
	"github.com/clinicalqa/vera/sse"
	"github.com/rs/zerolog/log"
)

// newStreamer constructs the answer source selected by cfg.Backend.
func newStreamer(ctx context.Context, cfg Config) (vera.Streamer, error) {
	switch cfg.Backend {
	case "", "sse":
		return sse.New(sse.WithBaseURL(cfg.Endpoint), sse.WithLogger(log.Logger)), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set (required by the gemini backend)")
		}
		opts := []gemini.Option{gemini.WithLogger(log.Logger)}
		if cfg.Model != "" {
			opts = append(opts, gemini.WithModel(cfg.Model))
		}
		client, err := gemini.New(ctx, cfg.GeminiAPIKey, opts...)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return client, nil
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set (required by the anthropic backend)")
		}
		return anthropic.New(cfg.AnthropicAPIKey, anthropic.WithModel(cfg.Model), anthropic.WithLogger(log.Logger)), nil
	default:
		return nil, fmt.Errorf("unknown backend %q: must be \"sse\", \"gemini\" or \"anthropic\"", cfg.Backend)
	}
}

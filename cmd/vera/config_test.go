package main

import (
	"testing"
	"time"

	"github.com/clinicalqa/vera/anthropic"
	"github.com/clinicalqa/vera/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := loadConfig(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, sse.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, "sse", cfg.Backend)
	assert.Equal(t, 100*time.Millisecond, cfg.UpdateInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.HistoryPath)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Parallel()
	cfg, err := loadConfig(map[string]string{
		"VERA_ENDPOINT":        "http://localhost:9000/stream",
		"VERA_BACKEND":         "gemini",
		"GEMINI_API_KEY":       "gk-test",
		"VERA_MODEL":           "gemini-2.5-pro",
		"VERA_UPDATE_INTERVAL": "250ms",
		"LOG_LEVEL":            "debug",
		"LOG_FILE":             "/tmp/vera.log",
		"VERA_HISTORY":         "/tmp/history.json",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/stream", cfg.Endpoint)
	assert.Equal(t, "gemini", cfg.Backend)
	assert.Equal(t, "gk-test", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, 250*time.Millisecond, cfg.UpdateInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/vera.log", cfg.LogFile)
	assert.Equal(t, "/tmp/history.json", cfg.HistoryPath)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Parallel()
	_, err := loadConfig(map[string]string{"VERA_UPDATE_INTERVAL": "soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:")
}

func TestNewStreamer(t *testing.T) {
	t.Parallel()

	t.Run("sse by default", func(t *testing.T) {
		t.Parallel()
		s, err := newStreamer(t.Context(), Config{Endpoint: sse.DefaultEndpoint})
		require.NoError(t, err)
		assert.IsType(t, &sse.Client{}, s)
	})

	t.Run("gemini with key", func(t *testing.T) {
		t.Parallel()
		s, err := newStreamer(t.Context(), Config{Backend: "gemini", GeminiAPIKey: "gk-test"})
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("gemini without key", func(t *testing.T) {
		t.Parallel()
		_, err := newStreamer(t.Context(), Config{Backend: "gemini"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("anthropic with key", func(t *testing.T) {
		t.Parallel()
		s, err := newStreamer(t.Context(), Config{Backend: "anthropic", AnthropicAPIKey: "sk-test"})
		require.NoError(t, err)
		assert.IsType(t, &anthropic.Client{}, s)
	})

	t.Run("anthropic without key", func(t *testing.T) {
		t.Parallel()
		_, err := newStreamer(t.Context(), Config{Backend: "anthropic"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()
		_, err := newStreamer(t.Context(), Config{Backend: "openai"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown backend")
	})
}

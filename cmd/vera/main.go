// Command vera asks clinical questions and renders the streamed answers.
//
// Usage:
//
//	vera [flags]
//
// Flags:
//
//	-ask string       Answer one question, print the sections and exit
//	-replay string    Decode recorded SSE files matching a glob and print their sections
//	-chunk int        Bytes fed to the decoder at a time during replay (default 7)
//	-snapshot         During replay, feed the decoder the accumulated body instead of each chunk
//	-history string   Transcript file to restore on start and save on exit
//	-backend string   Answer source: sse, gemini, anthropic (default from VERA_BACKEND)
//
// Environment:
//
//	VERA_ENDPOINT, VERA_BACKEND, GEMINI_API_KEY, ANTHROPIC_API_KEY, VERA_MODEL,
//	VERA_UPDATE_INTERVAL, VERA_HISTORY, LOG_LEVEL, LOG_FILE
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/caarlos0/env/v11"
	"github.com/clinicalqa/vera"
	bt "github.com/clinicalqa/vera/bubbletea"
	verajson "github.com/clinicalqa/vera/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vera: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		ask         = flag.String("ask", "", "Answer one question, print the sections and exit")
		replayGlob  = flag.String("replay", "", "Decode recorded SSE files matching a glob and print their sections")
		chunk       = flag.Int("chunk", defaultReplayChunk, "Bytes fed to the decoder at a time during replay")
		snapshot    = flag.Bool("snapshot", false, "During replay, feed the decoder the accumulated body instead of each chunk")
		historyPath = flag.String("history", "", "Transcript file to restore on start and save on exit")
		backend     = flag.String("backend", "", "Answer source: sse, gemini, anthropic")
	)
	flag.Parse()

	cfg, err := loadConfig(env.ToMap(os.Environ()))
	if err != nil {
		return err
	}
	if *historyPath != "" {
		cfg.HistoryPath = *historyPath
	}
	if *backend != "" {
		cfg.Backend = *backend
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	theme := vera.DefaultTheme()
	interactive := *ask == "" && *replayGlob == ""

	closeLog, err := setupLogging(cfg, interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	if *replayGlob != "" {
		return runReplay(ctx, os.Stdout, os.DirFS("."), *replayGlob, *chunk, *snapshot, theme)
	}

	streamer, err := newStreamer(ctx, cfg)
	if err != nil {
		return err
	}

	if *ask != "" {
		return runAsk(ctx, os.Stdout, streamer, *ask, theme)
	}

	history := vera.History{}
	if cfg.HistoryPath != "" {
		if history, err = verajson.LoadOrEmpty(cfg.HistoryPath); err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		log.Info().Str("path", cfg.HistoryPath).Int("exchanges", history.Len()).Msg("history loaded")
	}

	tuiModel := bt.New(streamer, &history, theme, bt.WithUpdateInterval(cfg.UpdateInterval))
	if err := bt.Run(ctx, tuiModel); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	if cfg.HistoryPath != "" {
		if err := verajson.Save(cfg.HistoryPath, history); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		fmt.Fprintf(os.Stderr, "History saved to %s\n", cfg.HistoryPath)
	}
	return nil
}

// setupLogging configures the global logger. The full-screen TUI owns the
// terminal, so interactive runs log only to LOG_FILE.
func setupLogging(cfg Config, interactive bool) (func(), error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	closeFn := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case interactive:
		out = io.Discard
	}
	log.Logger = log.Output(out)
	return closeFn, nil
}

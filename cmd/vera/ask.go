package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/clinicalqa/vera"
	"github.com/rs/zerolog/log"
)

// runAsk answers a single question and prints the final sections to w.
// Progress steps are logged as they arrive. An interrupted answer prints
// whatever was complete at that point.
func runAsk(ctx context.Context, w io.Writer, s vera.Streamer, question string, theme vera.Theme) error {
	query, err := vera.ValidateQuery(question)
	if err != nil {
		return err
	}

	var seg vera.Segmenter
	start := time.Now()
	sink := vera.SinkFunc(func(e vera.Event) {
		switch e := e.(type) {
		case vera.EventTextDelta:
			seg.AddChunk(e.Text)
		case vera.EventProgressSteps:
			for _, step := range e.Steps {
				if step.State() == vera.StepActive {
					log.Info().Str("step", step.Text).Str("extra", step.ExtraInfo).Msg("progress")
				}
			}
		}
	})

	if err := vera.Begin(ctx, s, query, sink).Wait(); err != nil {
		return fmt.Errorf("ask: %w", err)
	}
	sections := seg.Finalize()
	log.Debug().Int("sections", len(sections)).Dur("duration", time.Since(start)).Msg("answer finished")
	if ctx.Err() != nil {
		log.Warn().Msg("answer interrupted")
	}
	return printSections(w, sections, theme)
}

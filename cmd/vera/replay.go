package main

import (
	"context"
	"fmt"
	"io"
	iofs "io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/clinicalqa/vera"
	"github.com/clinicalqa/vera/sse"
	"github.com/rs/zerolog/log"
)

// defaultReplayChunk is the number of bytes fed to the decoder at a time
// during replay. It is small so recordings cross many line boundaries.
const defaultReplayChunk = 7

// runReplay decodes every recorded stream in fsys matching pattern and
// prints the sections each one yields. With snapshot set, the decoder is fed
// the accumulated body after every chunk instead of the chunk alone.
func runReplay(ctx context.Context, w io.Writer, fsys iofs.FS, pattern string, chunk int, snapshot bool, theme vera.Theme) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("replay: invalid glob pattern: %s", pattern)
	}
	if chunk <= 0 {
		chunk = defaultReplayChunk
	}

	var matches []string
	err := doublestar.GlobWalk(fsys, pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("replay: no files match %s", pattern)
	}

	for i, path := range matches {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := iofs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		sections, events := replay(data, chunk, snapshot)
		log.Debug().Str("file", path).Int("events", events).Int("sections", len(sections)).Msg("replayed")

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%d events)\n\n", filepath.FromSlash(path), events)
		if err := printSections(w, sections, theme); err != nil {
			return err
		}
	}
	return nil
}

// replay feeds data through a Decoder chunk bytes at a time and returns the
// final sections and the number of decoded events.
func replay(data []byte, chunk int, snapshot bool) ([]vera.Section, int) {
	var seg vera.Segmenter
	dec := sse.NewDecoder(vera.SinkFunc(func(e vera.Event) {
		if d, ok := e.(vera.EventTextDelta); ok {
			seg.AddChunk(d.Text)
		}
	}), log.Logger)
	for end := 0; end < len(data); {
		start := end
		end = min(end+chunk, len(data))
		if snapshot {
			dec.Snapshot(string(data[:end]))
		} else {
			_, _ = dec.Write(data[start:end])
		}
	}
	dec.Flush()
	return seg.Finalize(), dec.Events()
}

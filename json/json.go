// Package json persists the question/answer history of a session as a
// versioned JSON document.
//
// Only what the server sent is stored: the question, the raw answer text,
// the last progress snapshot and any error. Sections are derived again by
// the Segmenter when a history is loaded.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clinicalqa/vera"
)

const version = 1

// envelope is the v1 wire format for a persisted history.
type envelope struct {
	Version   int           `json:"version"`
	SavedAt   time.Time     `json:"saved_at"`
	Exchanges []exchangeDTO `json:"exchanges"`
}

type exchangeDTO struct {
	ID        string              `json:"id"`
	Question  string              `json:"question"`
	Answer    string              `json:"answer"`
	Steps     []vera.ProgressStep `json:"steps,omitempty"`
	Error     *string             `json:"error,omitempty"`
	Cancelled bool                `json:"cancelled,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// MarshalHistory serializes a History in v1 envelope format.
func MarshalHistory(h vera.History) ([]byte, error) {
	env := envelope{
		Version:   version,
		SavedAt:   time.Now().UTC(),
		Exchanges: make([]exchangeDTO, len(h.Exchanges)),
	}
	for i, e := range h.Exchanges {
		dto := exchangeDTO{
			ID:        e.ID,
			Question:  e.Question,
			Answer:    e.Answer,
			Steps:     e.Steps,
			Cancelled: e.Cancelled,
			CreatedAt: e.CreatedAt,
		}
		if e.Err != "" {
			msg := e.Err
			dto.Error = &msg
		}
		env.Exchanges[i] = dto
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalHistory deserializes a History in v1 envelope format and derives
// each exchange's sections from its answer.
func UnmarshalHistory(data []byte) (vera.History, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return vera.History{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != version {
		return vera.History{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	var h vera.History
	for i, dto := range env.Exchanges {
		if dto.Question == "" {
			return vera.History{}, fmt.Errorf("exchange %d: missing question", i)
		}
		e := vera.Exchange{
			ID:        dto.ID,
			Question:  dto.Question,
			Answer:    dto.Answer,
			Steps:     dto.Steps,
			Cancelled: dto.Cancelled,
			CreatedAt: dto.CreatedAt,
		}
		if dto.Error != nil {
			e.Err = *dto.Error
		}
		e.Resegment()
		h.Append(e)
	}
	return h, nil
}

// Save writes a History to a JSON file, creating parent directories as
// needed. The file is replaced atomically.
func Save(path string, h vera.History) error {
	data, err := MarshalHistory(h)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a History from a JSON file.
func Load(path string) (vera.History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return vera.History{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalHistory(data)
}

// LoadOrEmpty is Load, except that a missing file yields an empty History.
func LoadOrEmpty(path string) (vera.History, error) {
	h, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return vera.History{}, nil
	}
	return h, err
}

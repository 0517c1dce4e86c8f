package gemini

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/clinicalqa/vera"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ vera.Streamer = (*Client)(nil)

// Client answers questions with a Gemini model.
type Client struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger. The global zerolog logger is used by default.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client: gc,
		model:  defaultModel,
		logger: log.Logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Stream asks the model and relays its streamed answer to sink.
// See [vera.Streamer] for the callback and return contract.
func (c *Client) Stream(ctx context.Context, query string, sink vera.EventSink) error {
	start := time.Now()
	seq := c.client.Models.GenerateContentStream(ctx, c.model, genai.Text(query), BuildConfig())
	err := Relay(ctx, seq, sink)
	c.logger.Info().
		Str("model", c.model).
		Int("query_len", len(query)).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("gemini stream finished")
	return err
}

// BuildConfig returns the generation config used for every question.
// Exported for testing.
func BuildConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(vera.SystemPrompt, genai.RoleUser),
	}
}

// Relay drains seq into sink: one active progress step, every answer text
// part as a chunk, then a completed step and OnComplete. Cancellation of
// ctx ends the relay silently. Exported for testing.
func Relay(ctx context.Context, seq iter.Seq2[*genai.GenerateContentResponse, error], sink vera.EventSink) error {
	sink.OnSearchStep([]vera.ProgressStep{{Text: stepText, IsActive: true}})
	for resp, err := range seq {
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("gemini: %w", err)
			sink.OnError(err)
			return err
		}
		for _, text := range answerParts(resp) {
			sink.OnChunk(text)
		}
	}
	if ctx.Err() != nil {
		return nil
	}
	sink.OnSearchStep([]vera.ProgressStep{{Text: stepText, IsCompleted: true}})
	sink.OnComplete()
	return nil
}

// answerParts returns the non-thought text parts of the first candidate.
func answerParts(resp *genai.GenerateContentResponse) []string {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return nil
	}
	var out []string
	for _, p := range content.Parts {
		if p == nil || p.Thought || p.Text == "" {
			continue
		}
		out = append(out, p.Text)
	}
	return out
}

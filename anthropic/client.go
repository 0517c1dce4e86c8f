package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clinicalqa/vera"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Interface compliance check.
var _ vera.Streamer = (*Client)(nil)

// Client answers questions with an Anthropic model.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

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

// New creates a new Anthropic [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: http.DefaultClient,
		logger:     log.Logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream asks the model and relays its streamed answer to sink.
// See [vera.Streamer] for the callback and return contract.
func (c *Client) Stream(ctx context.Context, query string, sink vera.EventSink) error {
	start := time.Now()
	logger := c.logger.With().Str("model", c.model).Int("query_len", len(query)).Logger()

	body, err := c.buildRequestBody(query)
	if err != nil {
		return c.fail(ctx, logger, sink, fmt.Errorf("anthropic: %w", err))
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return c.fail(ctx, logger, sink, fmt.Errorf("anthropic: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.fail(ctx, logger, sink, fmt.Errorf("anthropic: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fail(ctx, logger, sink, parseHTTPError(resp))
	}

	sink.OnSearchStep([]vera.ProgressStep{{Text: stepText, IsActive: true}})
	r := newReader(resp.Body)
	for {
		eventType, data, err := r.next()
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return c.fail(ctx, logger, sink, errors.New("anthropic: unexpected end of stream"))
		}
		if err != nil {
			return c.fail(ctx, logger, sink, err)
		}

		switch eventType {
		case "content_block_delta":
			text, ok, err := textDelta(data)
			if err != nil {
				return c.fail(ctx, logger, sink, err)
			}
			if ok && text != "" {
				sink.OnChunk(text)
			}
		case "message_stop":
			sink.OnSearchStep([]vera.ProgressStep{{Text: stepText, IsCompleted: true}})
			sink.OnComplete()
			logger.Info().Dur("duration", time.Since(start)).Msg("anthropic stream finished")
			return nil
		case "error":
			return c.fail(ctx, logger, sink, parseStreamError(data))
		default:
			// message_start, ping, content_block_start and the rest carry
			// no answer text.
		}
	}
}

func (c *Client) buildRequestBody(query string) ([]byte, error) {
	return json.Marshal(apiRequest{
		Model:     c.model,
		MaxTokens: defaultMaxTokens,
		Stream:    true,
		System:    []apiContentBlock{{Type: "text", Text: vera.SystemPrompt}},
		Messages: []apiMessage{{
			Role:    "user",
			Content: []apiContentBlock{{Type: "text", Text: query}},
		}},
	})
}

// fail delivers err to sink unless ctx was cancelled, in which case the
// cycle ends silently.
func (c *Client) fail(ctx context.Context, logger zerolog.Logger, sink vera.EventSink, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	logger.Error().Err(err).Msg("anthropic stream failed")
	sink.OnError(err)
	return err
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("anthropic: %w %d (failed to read body: %v)", vera.ErrUnexpectedStatus, resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Message == "" {
		return fmt.Errorf("anthropic: %w %d: %s", vera.ErrUnexpectedStatus, resp.StatusCode, string(body))
	}
	return fmt.Errorf("anthropic: %w %d: %s: %s", vera.ErrUnexpectedStatus, resp.StatusCode, apiErr.Error.Type, apiErr.Error.Message)
}

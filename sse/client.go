package sse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clinicalqa/vera"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Interface compliance check.
var _ vera.Streamer = (*Client)(nil)

// Client streams answers from the SSE endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the stream endpoint. Useful for testing with httptest.
func WithBaseURL(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient sets a custom HTTP client. Streams are long-lived, so the
// client should not set an overall Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger. The global zerolog logger is used by default.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a [Client] for [DefaultEndpoint].
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
		logger:     log.Logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream requests an answer to query and delivers its events to sink.
// See [vera.Streamer] for the callback and return contract.
func (c *Client) Stream(ctx context.Context, query string, sink vera.EventSink) error {
	start := time.Now()
	logger := c.logger.With().Int("query_len", len(query)).Logger()

	u, err := c.requestURL(query)
	if err != nil {
		return c.fail(ctx, logger, sink, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return c.fail(ctx, logger, sink, fmt.Errorf("sse: %w", err))
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	logger.Debug().Str("url", u).Msg("opening stream")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(ctx, logger, sink, fmt.Errorf("sse: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(ctx, logger, sink, parseHTTPError(resp))
	}

	dec := NewDecoder(sink, logger)
	buf := make([]byte, readSize)
	for {
		n, err := resp.Body.Read(buf)
		if ctx.Err() != nil {
			logger.Debug().Int("events", dec.Events()).Msg("stream cancelled")
			return nil
		}
		if n > 0 {
			_, _ = dec.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return c.fail(ctx, logger, sink, fmt.Errorf("sse: read: %w", err))
		}
	}

	dec.Flush()
	logger.Info().
		Int("events", dec.Events()).
		Dur("duration", time.Since(start)).
		Msg("stream complete")
	sink.OnComplete()
	return nil
}

func (c *Client) requestURL(query string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("sse: endpoint: %w", err)
	}
	q := u.Query()
	q.Set("prompt", query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// fail reports err to sink unless the failure was caused by cancellation.
func (c *Client) fail(ctx context.Context, logger zerolog.Logger, sink vera.EventSink, err error) error {
	if ctx.Err() != nil {
		logger.Debug().Err(err).Msg("stream cancelled")
		return nil
	}
	logger.Error().Err(err).Msg("stream failed")
	sink.OnError(err)
	return err
}

const maxErrorBody = 512

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("sse: %w %d (failed to read body: %v)", vera.ErrUnexpectedStatus, resp.StatusCode, err)
	}
	excerpt := strings.TrimSpace(string(body))
	if excerpt == "" {
		return fmt.Errorf("sse: %w %d", vera.ErrUnexpectedStatus, resp.StatusCode)
	}
	return fmt.Errorf("sse: %w %d: %s", vera.ErrUnexpectedStatus, resp.StatusCode, excerpt)
}

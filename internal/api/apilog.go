package api

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Request log event names. One event is written per outbound call, plus
// server health transitions and limiter waits.
const (
	EventRequest         = "request"
	EventRateLimitWait   = "rate_limit_wait"
	EventServerDegraded  = "server_degraded"
	EventServerRecovered = "server_recovered"
)

// OpenAPILog opens (or creates) a JSON-lines request log at path and
// returns a logger writing to it. The caller closes the returned file.
func OpenAPILog(path string) (zerolog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("api log: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("api log: open %s: %w", path, err)
	}
	return zerolog.New(f).With().Timestamp().Logger(), f, nil
}

func (c *Client) logRequest(label string, statusCode int, duration time.Duration, state string, reqErr error) {
	ev := c.log.Info()
	if reqErr != nil {
		ev = c.log.Warn().Err(reqErr)
	}
	ev.Str("event", EventRequest).
		Str("label", label).
		Int("status_code", statusCode).
		Int64("duration_ms", duration.Milliseconds()).
		Str("server_state", state).
		Send()
}

func (c *Client) logRateLimitWait(label string, waited time.Duration) {
	c.log.Debug().
		Str("event", EventRateLimitWait).
		Str("label", label).
		Int64("rate_limited_ms", waited.Milliseconds()).
		Send()
}

func (c *Client) logServerStateChange(event, label string, from, to serverState) {
	c.log.Warn().
		Str("event", event).
		Str("label", label).
		Str("server_state", to.String()).
		Msgf("state transition: %s → %s", from, to)
}

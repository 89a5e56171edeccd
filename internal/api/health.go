package api

import "sync"

type serverState int

const (
	serverHealthy serverState = iota
	serverDegraded
)

func (s serverState) String() string {
	switch s {
	case serverHealthy:
		return "healthy"
	case serverDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// serverHealth counts consecutive server-side failures (HTTP 429 or 5xx)
// and marks the server degraded once threshold is reached. It only feeds
// the request log: every call is still sent exactly once, so one failing
// session can never keep a healthy one or the next sessions page from
// being requested.
type serverHealth struct {
	mu          sync.Mutex
	state       serverState
	consecutive int
	threshold   int
}

func newServerHealth(threshold int) *serverHealth {
	return &serverHealth{state: serverHealthy, threshold: threshold}
}

// RecordSuccess resets the failure count and returns the previous state.
func (h *serverHealth) RecordSuccess() (prev serverState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev = h.state
	h.consecutive = 0
	h.state = serverHealthy
	return prev
}

// RecordFailure counts a server-side failure and returns the state before
// and after it.
func (h *serverHealth) RecordFailure() (prev, next serverState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev = h.state
	h.consecutive++
	if h.consecutive >= h.threshold {
		h.state = serverDegraded
	}
	return prev, h.state
}

func (h *serverHealth) State() serverState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

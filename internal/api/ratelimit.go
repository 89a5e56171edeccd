package api

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// rateLimiter is a courtesy token bucket shared by every outbound call.
type rateLimiter struct {
	lim *rate.Limiter
}

func newRateLimiter(ratePerSec float64, burst int) *rateLimiter {
	return &rateLimiter{lim: rate.NewLimiter(rate.Limit(ratePerSec), burst)}
}

// Wait blocks until a token is available or ctx is cancelled, and reports
// how long it waited.
func (rl *rateLimiter) Wait(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	err := rl.lim.Wait(ctx)
	return time.Since(start), err
}

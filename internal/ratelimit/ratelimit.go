// Package ratelimit paces the requests a single worker makes against the
// expansion source. Every worker here talks to one upstream (YouTube), so
// pacing collapses to simple periodic spacing: one limiter per worker, no
// sharing across hosts, no bursting.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// RateGate paces calls to at most rate per second, with no burst
// allowance: a burst of 1 means every call after the first must wait out
// the full inter-call interval, which is exactly the "successive calls
// separated by at least 1/rate seconds" contract.
type RateGate struct {
	limiter *rate.Limiter
}

// New builds a RateGate that permits at most requestsPerSecond calls per
// second. A non-positive rate is treated as 1/s rather than "unlimited",
// since an unpaced worker is never what a crawl config intends.
func New(requestsPerSecond float64) *RateGate {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &RateGate{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1)}
}

// Wait blocks until the next call is permitted, or ctx is done.
func (g *RateGate) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}

package analyzer

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
)

// ResilientConfig bounds a single Analyze call.
type ResilientConfig struct {
	// Timeout caps the whole call, retries included.
	Timeout time.Duration
	// MaxAttempts is the retry budget (1 = no retries).
	MaxAttempts int
	// BaseDelay is the initial backoff between attempts.
	BaseDelay time.Duration
}

// Resilient wraps an Analyzer with a per-call timeout and bounded retry with
// exponential backoff. A hung downstream call then costs a worker slot for
// at most Timeout instead of indefinitely.
type Resilient struct {
	inner Analyzer
	cfg   ResilientConfig
}

// NewResilient builds a Resilient wrapper. Zero config fields get defaults
// (30s timeout, 2 attempts, 500ms base delay).
func NewResilient(inner Analyzer, cfg ResilientConfig) *Resilient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 2
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 500 * time.Millisecond
	}
	return &Resilient{inner: inner, cfg: cfg}
}

// Analyze runs the wrapped analyzer under the configured timeout and retry
// policy. Context cancellation from the worker pool propagates through.
func (r *Resilient) Analyze(ctx context.Context, tokenAddress, source string) (Result, error) {
	rt := retry.New[Result](retry.Config{
		MaxAttempts:   r.cfg.MaxAttempts,
		InitialDelay:  r.cfg.BaseDelay,
		BackoffPolicy: retry.BackoffExponential,
	})
	to := timeout.New[Result](timeout.Config{DefaultTimeout: r.cfg.Timeout})

	return to.Execute(ctx, r.cfg.Timeout, func(ctx context.Context) (Result, error) {
		return rt.Do(ctx, func(ctx context.Context) (Result, error) {
			return r.inner.Analyze(ctx, tokenAddress, source)
		})
	})
}

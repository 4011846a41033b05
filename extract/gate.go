package extract

import (
	"context"
	"time"

	"github.com/fwojciec/newsquote"
	"golang.org/x/time/rate"
)

var _ newsquote.Gate = (*FixedGate)(nil)

// FixedGate enforces a fixed minimum interval between consecutive
// operations using a token bucket with a burst of 1. The first Wait is
// immediate; each subsequent Wait blocks until the interval has elapsed.
// Safe for concurrent use.
type FixedGate struct {
	limiter *rate.Limiter
}

// NewFixedGate creates a gate with the given interval between operations.
// A non-positive interval yields a gate that never blocks.
func NewFixedGate(interval time.Duration) *FixedGate {
	if interval <= 0 {
		return &FixedGate{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &FixedGate{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the gate allows the next operation.
func (g *FixedGate) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}

var _ newsquote.Gate = (*NopGate)(nil)

// NopGate never blocks. Used in tests.
type NopGate struct{}

// Wait returns immediately.
func (g *NopGate) Wait(ctx context.Context) error { return ctx.Err() }

// Package retry provides a bounded-attempt execution wrapper shared by the
// fetch and parse stages. Callers classify failures as retryable or fatal;
// fatal failures propagate immediately, retryable ones are re-attempted
// with a fixed or exponential delay up to the attempt bound.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Class is the outcome of classifying a failure.
type Class int

const (
	// Retryable failures are re-attempted until the bound is reached.
	Retryable Class = iota

	// Fatal failures stop immediately and propagate.
	Fatal
)

// Classifier maps a failure to a Class. A nil Classifier treats every
// failure as Retryable.
type Classifier func(error) Class

// LogFunc is the signature for a logging function called per retry.
type LogFunc func(format string, args ...any)

// Policy configures bounded retries. The zero value performs a single
// attempt with no delay. A Policy carries no state across Do calls; each
// invocation is independent.
type Policy struct {
	// MaxAttempts is the total number of attempts (not retries).
	// Values below 1 mean a single attempt.
	MaxAttempts int

	// Delay is the pause after a retryable failure.
	Delay time.Duration

	// Exponential doubles the delay after each failed attempt.
	Exponential bool

	// Log, if set, is called before each retry with the attempt number
	// and the failure being retried.
	Log LogFunc
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// delay returns the pause after the given 1-based failed attempt.
func (p Policy) delay(attempt int) time.Duration {
	if !p.Exponential {
		return p.Delay
	}
	return p.Delay << (attempt - 1)
}

// exhaustedError marks that every attempt failed with a retryable error.
// It wraps the last failure so callers can still inspect its code.
type exhaustedError struct {
	attempts int
	last     error
}

func (e *exhaustedError) Error() string {
	return fmt.Sprintf("attempts exhausted after %d: %v", e.attempts, e.last)
}

func (e *exhaustedError) Unwrap() error { return e.last }

// Exhausted reports whether err is an attempts-exhausted outcome, as
// opposed to a fatal failure or a context error.
func Exhausted(err error) bool {
	var e *exhaustedError
	return errors.As(err, &e)
}

// Do executes op up to p.MaxAttempts times. Failures classified Fatal
// propagate immediately; after the bound is reached on Retryable failures
// the last failure is wrapped in an attempts-exhausted error (see
// Exhausted). Context cancellation is checked before each sleep.
func Do[T any](ctx context.Context, p Policy, classify Classifier, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	maxAttempts := p.attempts()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if classify != nil && classify(err) == Fatal {
			return zero, err
		}
		if attempt == maxAttempts {
			break
		}

		if p.Log != nil {
			p.Log("retry (attempt %d/%d): %v", attempt+1, maxAttempts, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(p.delay(attempt)):
		}
	}

	return zero, &exhaustedError{attempts: maxAttempts, last: lastErr}
}

package newsquote

import "context"

// Gate imposes a mandatory pause between consecutive operations, used to
// respect upstream rate limits. It replaces inline sleeps so tests can
// substitute a zero-delay gate. Implementations must be safe for
// concurrent use: the parsing worker pool shares one gate.
type Gate interface {
	// Wait blocks until the gate allows the next operation.
	// Returns an error only if the context is canceled.
	Wait(ctx context.Context) error
}

package sink

import "context"

// Sink emits typed records to a downstream system.
type Sink interface {
	Emit(ctx context.Context, typ string, v any) error
	Close() error
}

// Noop discards everything.
type Noop struct{}

func (Noop) Emit(context.Context, string, any) error { return nil }
func (Noop) Close() error                            { return nil }

package server

import (
	"context"
	"os/signal"
	"syscall"
)

// WithSignal derives a context that ends on SIGINT or SIGTERM, so operator
// shutdown flows through the same cancellation path as any other stop.
func WithSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

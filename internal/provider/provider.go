// Package provider supplies telemetry tick streams from different
// sources: a deterministic synthetic generator, recorded-session
// replay, and a line-oriented serial feed.
package provider

import (
	"context"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

// Provider is a telemetry source. Connect establishes the source,
// Stream pushes ticks into out until the context is cancelled or the
// source is exhausted, and Close releases any held resources. Stream
// never closes out; ownership of the channel stays with the caller.
type Provider interface {
	Connect() error
	Stream(ctx context.Context, out chan<- telemetry.Tick) error
	Close() error
}

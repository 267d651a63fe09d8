package services

import (
	"context"
	"log/slog"

	"github.com/dukex/fluxo/pkg/eventbus"
	"github.com/dukex/fluxo/pkg/otelhelper"
)

var tracer = otelhelper.NoopTracer("github.com/dukex/fluxo/pkg/services")

// publish sends event after a successful write. The write is not undone when
// the bus refuses the event.
func publish(ctx context.Context, logger *slog.Logger, publisher eventbus.EventPublisher, key string, event eventbus.Event) {
	if publisher == nil {
		return
	}

	err := publisher.Publish(ctx, key, event)
	if err != nil {
		logger.ErrorContext(ctx, "failed to publish event", "event_type", event.GetType(), "key", key, "error", err)
	}
}

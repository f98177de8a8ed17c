package services

import (
	"context"
	"log/slog"

	"github.com/pensacomp/lms-service/internal/events"
)

// publishEvent emits a domain event best-effort: broker failures are logged
// and never fail the request that produced them.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish event", "event_type", event.Type, "error", err)
	}
}

package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/invoicemonk/backend/internal/domain/shared"
)

// ActivityLogHandler writes every domain event to the structured log.
// It subscribes as a wildcard so new event types are picked up without
// registration changes.
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates a new ActivityLogHandler
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{logger: logger}
}

// Handle logs the event
func (h *ActivityLogHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.String("business_id", evt.BusinessID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty list so the handler receives all events
func (h *ActivityLogHandler) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*ActivityLogHandler)(nil)

package usecase

import (
	"context"
	"time"

	"github.com/allisson/gymbuddy/internal/metrics"
	"github.com/allisson/gymbuddy/internal/outbox/domain"
)

type eventProcessorWithMetrics struct {
	next    EventProcessor
	metrics metrics.BusinessMetrics
}

// NewEventProcessorWithMetrics records one "outbox" operation per delivered
// event, labelled by event type.
func NewEventProcessorWithMetrics(processor EventProcessor, m metrics.BusinessMetrics) EventProcessor {
	return &eventProcessorWithMetrics{next: processor, metrics: m}
}

func (p *eventProcessorWithMetrics) Process(ctx context.Context, event *domain.OutboxEvent) error {
	start := time.Now()
	err := p.next.Process(ctx, event)

	status := metrics.StatusOf(err)
	p.metrics.RecordOperation(ctx, "outbox", string(event.EventType), status)
	p.metrics.RecordDuration(ctx, "outbox", string(event.EventType), time.Since(start), status)
	return err
}

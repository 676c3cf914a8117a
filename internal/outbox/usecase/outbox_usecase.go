// Package usecase delivers pending account events from the outbox.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/gymbuddy/internal/database"
	"github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/outbox/domain"
)

// Config holds outbox use case configuration
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository defines outbox event repository operations
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor delivers one event. A returned error leaves the event
// pending until the retry budget is spent.
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the interface for outbox use cases
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}

// OutboxUseCase polls the outbox and hands pending events to an EventProcessor.
type OutboxUseCase struct {
	config         Config
	txManager      database.TxManager
	outboxRepo     OutboxEventRepository
	eventProcessor EventProcessor
	logger         *slog.Logger
	now            func() time.Time
}

// NewOutboxUseCase creates a new OutboxUseCase
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	logger *slog.Logger,
) *OutboxUseCase {
	return &OutboxUseCase{
		config:         config,
		txManager:      txManager,
		outboxRepo:     outboxRepo,
		eventProcessor: eventProcessor,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Start runs ProcessEvents every Interval until ctx is cancelled.
// Batch failures are logged and retried on the next tick.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	if uc.config.Interval <= 0 {
		return errors.Wrap(errors.ErrInvalidInput, "outbox interval must be positive")
	}

	uc.logger.Info("starting outbox event processor",
		slog.Duration("interval", uc.config.Interval),
		slog.Int("batch_size", uc.config.BatchSize),
	)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("stopping outbox event processor")
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil {
				uc.logger.Error("failed to process events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents processes one batch of pending events in a transaction.
func (uc *OutboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}

		if len(events) == 0 {
			return nil
		}

		uc.logger.Debug("processing events", slog.Int("count", len(events)))

		for _, event := range events {
			if err := uc.eventProcessor.Process(ctx, event); err != nil {
				uc.logger.Error("failed to process event",
					slog.String("event_id", event.ID.String()),
					slog.String("event_type", string(event.EventType)),
					slog.Int("retries", event.Retries+1),
					slog.Any("error", err),
				)

				event.MarkFailed(err, uc.config.MaxRetries)
			} else {
				event.MarkProcessed(uc.now())
			}

			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}

		return nil
	})
}

// AuditLogProcessor writes every account event to the audit log.
type AuditLogProcessor struct {
	logger *slog.Logger
}

// NewAuditLogProcessor creates a new AuditLogProcessor
func NewAuditLogProcessor(logger *slog.Logger) *AuditLogProcessor {
	return &AuditLogProcessor{logger: logger}
}

// Process logs the event. Malformed payloads are reported as errors so the
// event is retried and eventually parked as failed.
func (p *AuditLogProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	payload, err := event.AccountPayload()
	if err != nil {
		return err
	}

	attrs := []slog.Attr{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.EventType)),
		slog.String("user_id", payload.UserID.String()),
		slog.String("username", payload.Username),
		slog.Time("occurred_at", payload.OccurredAt),
	}

	switch event.EventType {
	case domain.EventUserRegistered, domain.EventUserPasswordChanged, domain.EventUserDeleted:
		p.logger.LogAttrs(ctx, slog.LevelInfo, "account event", attrs...)
	default:
		p.logger.LogAttrs(ctx, slog.LevelWarn, "unknown account event", attrs...)
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/gymbuddy/internal/database"
	"github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/outbox/domain"
)

// SQLiteOutboxEventRepository handles outbox event persistence for SQLite.
// SQLite serialises writers, so pending events are read without row locks.
type SQLiteOutboxEventRepository struct {
	db *sql.DB
}

// NewSQLiteOutboxEventRepository creates a new SQLiteOutboxEventRepository
func NewSQLiteOutboxEventRepository(db *sql.DB) *SQLiteOutboxEventRepository {
	return &SQLiteOutboxEventRepository{db: db}
}

// Create inserts a new outbox event
func (r *SQLiteOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO outbox_events (id, event_type, aggregate_id, payload, status, retries, last_error,
			  processed_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, event.ID, string(event.EventType), event.AggregateID, event.Payload,
		string(event.Status), event.Retries, event.LastError, event.ProcessedAt, event.CreatedAt.UTC(), event.UpdatedAt.UTC())
	if err != nil {
		return errors.Wrap(err, "failed to create outbox event")
	}
	return nil
}

// GetPendingEvents retrieves the oldest pending events.
func (r *SQLiteOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, event_type, aggregate_id, payload, status, retries, last_error, processed_at,
			  created_at, updated_at
			  FROM outbox_events
			  WHERE status = ?
			  ORDER BY created_at ASC, id ASC
			  LIMIT ?`

	rows, err := querier.QueryContext(ctx, query, string(domain.OutboxEventStatusPending), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pending outbox events")
	}
	defer rows.Close() //nolint:errcheck

	var events []*domain.OutboxEvent
	for rows.Next() {
		var event domain.OutboxEvent

		err := rows.Scan(&event.ID, &event.EventType, &event.AggregateID, &event.Payload, &event.Status,
			&event.Retries, &event.LastError, &event.ProcessedAt, &event.CreatedAt, &event.UpdatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan outbox event")
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Update persists the delivery state of an outbox event
func (r *SQLiteOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)
	event.UpdatedAt = time.Now().UTC()

	query := `UPDATE outbox_events
			  SET status = ?, retries = ?, last_error = ?, processed_at = ?, updated_at = ?
			  WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, string(event.Status), event.Retries, event.LastError,
		event.ProcessedAt, event.UpdatedAt, event.ID)
	if err != nil {
		return errors.Wrap(err, "failed to update outbox event")
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/gymbuddy/internal/database"
	"github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/outbox/domain"
)

// MySQLOutboxEventRepository handles outbox event persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLOutboxEventRepository struct {
	db *sql.DB
}

// NewMySQLOutboxEventRepository creates a new MySQLOutboxEventRepository
func NewMySQLOutboxEventRepository(db *sql.DB) *MySQLOutboxEventRepository {
	return &MySQLOutboxEventRepository{
		db: db,
	}
}

// Create inserts a new outbox event
func (r *MySQLOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO outbox_events (id, event_type, aggregate_id, payload, status, retries, last_error,
			  processed_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return err
	}
	aggregateBytes, err := event.AggregateID.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query, idBytes, event.EventType, aggregateBytes, event.Payload,
		event.Status, event.Retries, event.LastError, event.ProcessedAt, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to create outbox event")
	}
	return nil
}

// GetPendingEvents retrieves the oldest pending events, locking them so
// concurrent workers skip each other's batches.
func (r *MySQLOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, event_type, aggregate_id, payload, status, retries, last_error, processed_at,
			  created_at, updated_at
			  FROM outbox_events
			  WHERE status = ?
			  ORDER BY created_at ASC, id ASC
			  LIMIT ?
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, domain.OutboxEventStatusPending, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pending outbox events")
	}
	defer rows.Close() //nolint:errcheck

	var events []*domain.OutboxEvent
	for rows.Next() {
		var event domain.OutboxEvent
		var idBytes, aggregateBytes []byte

		err := rows.Scan(&idBytes, &event.EventType, &aggregateBytes, &event.Payload, &event.Status,
			&event.Retries, &event.LastError, &event.ProcessedAt, &event.CreatedAt, &event.UpdatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan outbox event")
		}

		if err := event.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, err
		}
		if err := event.AggregateID.UnmarshalBinary(aggregateBytes); err != nil {
			return nil, err
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Update persists the delivery state of an outbox event
func (r *MySQLOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)
	event.UpdatedAt = time.Now().UTC()

	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return err
	}

	query := `UPDATE outbox_events
			  SET status = ?, retries = ?, last_error = ?, processed_at = ?, updated_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, event.Status, event.Retries, event.LastError,
		event.ProcessedAt, event.UpdatedAt, idBytes)
	if err != nil {
		return errors.Wrap(err, "failed to update outbox event")
	}
	return nil
}

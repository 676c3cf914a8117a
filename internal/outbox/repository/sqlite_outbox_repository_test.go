package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/gymbuddy/internal/database"
	"github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/outbox/domain"
	"github.com/allisson/gymbuddy/internal/testutil"
)

func newTestEvent(t *testing.T, eventType domain.EventType, occurredAt time.Time) *domain.OutboxEvent {
	t.Helper()
	event, err := domain.NewAccountEvent(eventType, domain.AccountPayload{
		UserID:     uuid.Must(uuid.NewV7()),
		Username:   "alice",
		OccurredAt: occurredAt,
	})
	require.NoError(t, err)
	return event
}

func TestSQLiteOutboxEventRepository_CreateAndGetPending(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteOutboxEventRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	first := newTestEvent(t, domain.EventUserRegistered, base)
	second := newTestEvent(t, domain.EventUserPasswordChanged, base.Add(time.Second))
	third := newTestEvent(t, domain.EventUserDeleted, base.Add(2*time.Second))

	for _, event := range []*domain.OutboxEvent{second, first, third} {
		require.NoError(t, repo.Create(ctx, event))
	}

	events, err := repo.GetPendingEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, first.ID, events[0].ID)
	assert.Equal(t, domain.EventUserRegistered, events[0].EventType)
	assert.Equal(t, first.AggregateID, events[0].AggregateID)
	assert.Equal(t, first.Payload, events[0].Payload)
	assert.Equal(t, domain.OutboxEventStatusPending, events[0].Status)
	assert.Nil(t, events[0].LastError)
	assert.Nil(t, events[0].ProcessedAt)
	assert.True(t, base.Equal(events[0].CreatedAt))
	assert.Equal(t, second.ID, events[1].ID)
}

func TestSQLiteOutboxEventRepository_Update(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteOutboxEventRepository(db)
	ctx := context.Background()

	processed := newTestEvent(t, domain.EventUserRegistered, time.Now().UTC())
	failed := newTestEvent(t, domain.EventUserDeleted, time.Now().UTC())
	retrying := newTestEvent(t, domain.EventUserPasswordChanged, time.Now().UTC())
	for _, event := range []*domain.OutboxEvent{processed, failed, retrying} {
		require.NoError(t, repo.Create(ctx, event))
	}

	processed.MarkProcessed(time.Now().UTC())
	require.NoError(t, repo.Update(ctx, processed))

	failed.MarkFailed(errors.New("boom"), 1)
	require.NoError(t, repo.Update(ctx, failed))

	retrying.MarkFailed(errors.New("temporary"), 3)
	require.NoError(t, repo.Update(ctx, retrying))

	events, err := repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, retrying.ID, events[0].ID)
	assert.Equal(t, 1, events[0].Retries)
	require.NotNil(t, events[0].LastError)
	assert.Equal(t, "temporary", *events[0].LastError)

	var status string
	require.NoError(t, db.QueryRow(`SELECT status FROM outbox_events WHERE id = ?`, processed.ID).Scan(&status))
	assert.Equal(t, "processed", status)
}

func TestSQLiteOutboxEventRepository_RollbackDiscardsEvent(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteOutboxEventRepository(db)
	txManager := database.NewTxManager(db)
	ctx := context.Background()

	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, newTestEvent(t, domain.EventUserRegistered, time.Now().UTC())))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	events, err := repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

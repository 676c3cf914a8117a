// Package domain defines the account lifecycle events recorded through the
// transactional outbox.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gymbuddy/internal/errors"
)

// EventType names an account lifecycle event.
type EventType string

// Account lifecycle events written in the same transaction as the user change.
const (
	EventUserRegistered      EventType = "user.registered"
	EventUserPasswordChanged EventType = "user.password_changed"
	EventUserDeleted         EventType = "user.deleted"
)

// OutboxEventStatus represents the status of an outbox event
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// OutboxEvent is a pending notification about a change to one account.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   EventType
	AggregateID uuid.UUID
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AccountPayload is the JSON body of every account event. It never carries
// password material.
type AccountPayload struct {
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewAccountEvent builds a pending event of eventType for payload.
func NewAccountEvent(eventType EventType, payload AccountPayload) (*OutboxEvent, error) {
	if payload.UserID == uuid.Nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "account event requires a user id")
	}
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal account event payload")
	}

	return &OutboxEvent{
		ID:          uuid.Must(uuid.NewV7()),
		EventType:   eventType,
		AggregateID: payload.UserID,
		Payload:     string(body),
		Status:      OutboxEventStatusPending,
		CreatedAt:   payload.OccurredAt,
		UpdatedAt:   payload.OccurredAt,
	}, nil
}

// AccountPayload decodes the event body.
func (e *OutboxEvent) AccountPayload() (AccountPayload, error) {
	var payload AccountPayload
	if err := json.Unmarshal([]byte(e.Payload), &payload); err != nil {
		return AccountPayload{}, errors.Wrap(err, "failed to decode account event payload")
	}
	return payload, nil
}

// MarkProcessed records a successful delivery at now.
func (e *OutboxEvent) MarkProcessed(now time.Time) {
	e.Status = OutboxEventStatusProcessed
	e.ProcessedAt = &now
	e.LastError = nil
}

// MarkFailed records a failed delivery. The event stays pending until it has
// failed maxRetries times.
func (e *OutboxEvent) MarkFailed(cause error, maxRetries int) {
	e.Retries++
	msg := cause.Error()
	e.LastError = &msg
	if e.Retries >= maxRetries {
		e.Status = OutboxEventStatusFailed
	}
}

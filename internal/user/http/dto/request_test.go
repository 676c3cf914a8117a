package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/user/domain"
)

func TestRegisterUserRequest_Validate(t *testing.T) {
	valid := RegisterUserRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *RegisterUserRequest)
	}{
		{"missing username", func(r *RegisterUserRequest) { r.Username = "" }},
		{"blank username", func(r *RegisterUserRequest) { r.Username = "   " }},
		{"bad email", func(r *RegisterUserRequest) { r.Email = "alice" }},
		{"missing password", func(r *RegisterUserRequest) { r.Password = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.True(t, apperrors.Is(req.Validate(), apperrors.ErrInvalidInput))
		})
	}
}

func TestRegisterUserRequest_ToInput(t *testing.T) {
	req := RegisterUserRequest{Username: "alice", Email: "alice@example.com", Password: "secret123", City: "Oxford"}
	input := req.ToInput()

	assert.Equal(t, "alice", input.Username)
	assert.Equal(t, "secret123", string(input.Password))
	assert.Equal(t, "Oxford", input.City)
}

func TestUpdateUserRequest(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"`+id.String()+`","city":"Paris"}`), &req))
	require.NoError(t, req.Validate())

	input := req.ToInput()
	assert.Equal(t, id, input.ID)
	require.NotNil(t, input.City)
	assert.Equal(t, "Paris", *input.City)
	assert.Nil(t, input.Username)
	assert.Nil(t, input.Email)

	assert.Error(t, (&UpdateUserRequest{}).Validate())
	assert.Error(t, (&UpdateUserRequest{ID: "not-a-uuid"}).Validate())
}

func TestUpdatePasswordRequest(t *testing.T) {
	assert.Error(t, (&UpdatePasswordRequest{NewPassword: "x"}).Validate())
	assert.Error(t, (&UpdatePasswordRequest{CurrentPassword: "x"}).Validate())

	id := uuid.Must(uuid.NewV7())
	req := UpdatePasswordRequest{CurrentPassword: "old-secret", NewPassword: "new-secret"}
	require.NoError(t, req.Validate())

	input := req.ToInput(id)
	assert.Equal(t, id, input.UserID)
	assert.Equal(t, "old-secret", string(input.CurrentPassword))
	assert.Equal(t, "new-secret", string(input.NewPassword))
}

func TestMapUserToResponse_OmitsPasswordHash(t *testing.T) {
	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$secret",
		CreatedAt:    time.Now(),
	}

	body, err := json.Marshal(MapUsersToListResponse([]*domain.User{user}))
	require.NoError(t, err)

	assert.Contains(t, string(body), `"username":"alice"`)
	assert.NotContains(t, string(body), "argon2id")
	assert.NotContains(t, string(body), "password")
}

func TestMapUsersToListResponse_Empty(t *testing.T) {
	body, err := json.Marshal(MapUsersToListResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(body))
}

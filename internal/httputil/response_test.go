package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gymbuddy/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "user not found"), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.Wrap(apperrors.ErrConflict, "user already exists"), http.StatusConflict, "conflict"},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "email: bad"), http.StatusBadRequest, "invalid_input"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unknown", errors.New("database exploded"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeErrorResponse(t, w).Error)
		})
	}

	t.Run("internal details are hidden", func(t *testing.T) {
		c, w := newTestContext()

		HandleErrorGin(c, errors.New("pq: password authentication failed"), nil)

		response := decodeErrorResponse(t, w)
		assert.NotContains(t, response.Message, "pq:")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()

		HandleErrorGin(c, nil, logger)

		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()

	HandleBadRequestGin(c, errors.New("invalid offset"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeErrorResponse(t, w)
	assert.Equal(t, "bad_request", response.Error)
	assert.Equal(t, "invalid offset", response.Message)
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()

	HandleValidationErrorGin(c, errors.New("username: cannot be blank."), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decodeErrorResponse(t, w).Error)
}

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	authHTTP "github.com/allisson/gymbuddy/internal/auth/http"
	"github.com/allisson/gymbuddy/internal/user/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestContext builds a gin context with an optional JSON body.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

// authenticate binds a session identity for userID to the request.
func authenticate(c *gin.Context, username string, userID uuid.UUID) {
	identity := &authDomain.Identity{Subject: username, UserID: userID, Source: authDomain.SourceUserStore}
	c.Request = c.Request.WithContext(authHTTP.WithIdentity(c.Request.Context(), identity))
}

func newTestUser() *domain.User {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		FirstName:    "Alice",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

package http

import (
	"encoding/json"
	"encoding/pem"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"
	cryptoService "github.com/allisson/gymbuddy/internal/crypto/service"
	apperrors "github.com/allisson/gymbuddy/internal/errors"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type failingKeySource struct{}

func (failingKeySource) PublicKeyPEM() ([]byte, error) {
	return nil, apperrors.Wrap(cryptoDomain.ErrKeyMaterialUnavailable, "disk gone")
}

func serve(handler *PublicKeyHandler) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/api/public-key", handler.GetPublicKeyHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/public-key", nil))
	return w
}

func TestPublicKeyHandler_GetPublicKeyHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Success_ServesPEM", func(t *testing.T) {
		keyPair, err := cryptoDomain.GenerateKeyPair(cryptoDomain.DefaultKeyBits)
		require.NoError(t, err)
		provider, err := cryptoService.NewKeyProvider(keyPair)
		require.NoError(t, err)

		w := serve(NewPublicKeyHandler(provider, logger))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

		block, _ := pem.Decode(w.Body.Bytes())
		require.NotNil(t, block)
		assert.Equal(t, "PUBLIC KEY", block.Type)

		parsed, err := cryptoDomain.ParsePublicKey(w.Body.Bytes())
		require.NoError(t, err)
		assert.True(t, keyPair.PublicKey.Equal(parsed))
	})

	t.Run("Error_KeyMaterialUnavailable", func(t *testing.T) {
		w := serve(NewPublicKeyHandler(failingKeySource{}, logger))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "internal_error", response["error"])
		assert.NotContains(t, w.Body.String(), "disk gone")
	})
}

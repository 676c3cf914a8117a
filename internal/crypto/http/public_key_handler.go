// Package http exposes the transport public key to clients.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/gymbuddy/internal/httputil"
)

// PublicKeySource supplies the PEM encoded transport public key.
type PublicKeySource interface {
	PublicKeyPEM() ([]byte, error)
}

// PublicKeyHandler serves the RSA public key clients encrypt passwords with.
type PublicKeyHandler struct {
	keySource PublicKeySource
	logger    *slog.Logger
}

// NewPublicKeyHandler creates a new public key handler.
func NewPublicKeyHandler(keySource PublicKeySource, logger *slog.Logger) *PublicKeyHandler {
	return &PublicKeyHandler{
		keySource: keySource,
		logger:    logger,
	}
}

// GetPublicKeyHandler returns the PKIX PEM public key as text.
// GET /api/public-key - No authentication required.
// Returns 200 with the PEM body, or 500 when the key material is unavailable.
func (h *PublicKeyHandler) GetPublicKeyHandler(c *gin.Context) {
	publicKeyPEM, err := h.keySource.PublicKeyPEM()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", publicKeyPEM)
}

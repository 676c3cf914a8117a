package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/allisson/gymbuddy/internal/config"
)

// createCORSMiddleware returns nil when CORS is disabled or no origin is configured.
//
// Browsers must be allowed to send the session token header, which may be a
// custom header when SESSION_TOKEN_HEADER is not Authorization.
func createCORSMiddleware(cfg *config.Config, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.CORSEnabled {
		return nil
	}

	origins := parseOrigins(cfg.CORSAllowOrigins)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no origins configured - CORS will not be applied")
		return nil
	}

	logger.Info("CORS enabled", slog.Int("origin_count", len(origins)), slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowHeaders:     allowedHeaders(cfg.SessionTokenHeader),
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func allowedHeaders(sessionHeader string) []string {
	headers := []string{"Authorization", "Content-Type"}
	if sessionHeader != "" && !strings.EqualFold(sessionHeader, "Authorization") {
		headers = append(headers, sessionHeader)
	}
	return headers
}

// parseOrigins splits a comma separated origin list, dropping blanks.
func parseOrigins(originsStr string) []string {
	if originsStr == "" {
		return nil
	}

	var origins []string
	for _, part := range strings.Split(originsStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

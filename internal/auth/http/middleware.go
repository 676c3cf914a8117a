package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/gymbuddy/internal/auth/service"
	apperrors "github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/httputil"
)

const bearerPrefix = "bearer "

// SessionMiddleware validates the session token carried in headerName and
// binds the resulting identity to the request context.
//
// The middleware never rejects a request. A missing, malformed, expired or
// forged token leaves the request anonymous and routes that need an identity
// guard themselves with RequireAuthentication.
//
// For the Authorization header the value must be "Bearer <token>" (prefix is
// case-insensitive). Any other header carries the raw token.
func SessionMiddleware(
	sessionTokens authService.SessionTokenService,
	headerName string,
	logger *slog.Logger,
) gin.HandlerFunc {
	if headerName == "" {
		headerName = "Authorization"
	}
	requireBearer := strings.EqualFold(headerName, "Authorization")

	return func(c *gin.Context) {
		token, ok := extractSessionToken(c.GetHeader(headerName), requireBearer)
		if !ok {
			c.Next()
			return
		}

		claims, err := sessionTokens.Validate(token)
		if err != nil {
			logger.Debug("session token ignored", slog.Any("error", err))
			c.Next()
			return
		}

		ctx := WithIdentity(c.Request.Context(), claims.Identity())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAuthentication aborts with 401 unless SessionMiddleware bound an identity.
func RequireAuthentication(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c.Request.Context()); !ok {
			c.Header("WWW-Authenticate", "Bearer")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractSessionToken(value string, requireBearer bool) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	hasPrefix := len(value) > len(bearerPrefix) && strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix)
	switch {
	case hasPrefix:
		value = strings.TrimSpace(value[len(bearerPrefix):])
	case requireBearer:
		return "", false
	}

	return value, value != ""
}

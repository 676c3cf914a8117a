package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	"github.com/allisson/gymbuddy/internal/auth/http/dto"
	authUseCase "github.com/allisson/gymbuddy/internal/auth/usecase"
	apperrors "github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/httputil"
	customValidation "github.com/allisson/gymbuddy/internal/validation"
)

// invalidCredentialsResponse is the single body sent for every rejected login.
var invalidCredentialsResponse = httputil.ErrorResponse{
	Error:   "invalid_credentials",
	Message: "Invalid username or password",
}

// LoginHandler handles POST /api/users/login.
type LoginHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// LoginHandler exchanges an RSA encrypted credential for a session token.
// POST /api/users/login - No authentication required.
//
// Responses:
//   - 200 with {token, token_type, expires_at}
//   - 400 when username or password is missing, or the password is not base64
//   - 401 with the same body for every decryption, lookup or verification failure
func (h *LoginHandler) LoginHandler(c *gin.Context) {
	noStore(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	credential, err := req.ToCredential()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), credential)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, invalidCredentialsResponse)
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLoginOutputToResponse(output))
}

// noStore marks a response as uncacheable.
func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

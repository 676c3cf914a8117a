// Package http provides the gin handlers for account management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/gymbuddy/internal/auth/http"
	apperrors "github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/httputil"
	"github.com/allisson/gymbuddy/internal/user/domain"
	"github.com/allisson/gymbuddy/internal/user/http/dto"
	"github.com/allisson/gymbuddy/internal/user/usecase"
)

// UserHandler handles the /api/users endpoints other than login.
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler creates an account.
// POST /api/users/register - No authentication required.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.RegisterUser(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// MeHandler returns the account behind the current session.
// GET /api/users/me - Requires authentication.
func (h *UserHandler) MeHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}
	// Fallback identities have no stored account.
	if !identity.HasUserID() {
		httputil.HandleErrorGin(c, domain.ErrUserNotFound, h.logger)
		return
	}

	user, err := h.userUseCase.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// ListAllHandler lists accounts page by page.
// GET /api/users/listAll?offset=0&limit=50 - Requires authentication.
func (h *UserHandler) ListAllHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.ListUsers(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// FindHandler looks an account up by email.
// GET /api/users/find?email= - Requires authentication.
func (h *UserHandler) FindHandler(c *gin.Context) {
	user, err := h.userUseCase.GetUserByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// GetUserHandler looks an account up by username.
// GET /api/users/getUser?username= - Requires authentication.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	user, err := h.userUseCase.GetUserByUsername(c.Request.Context(), c.Query("username"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// UpdateHandler applies a partial profile update to the caller's account.
// PUT /api/users/update - Requires authentication and ownership.
func (h *UserHandler) UpdateHandler(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input := req.ToInput()
	if err := h.requireOwner(c, input.ID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.UpdateUser(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// UpdatePasswordHandler changes the caller's password.
// PUT /api/users/updatePassword/:userId - Requires authentication and ownership.
func (h *UserHandler) UpdatePasswordHandler(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.requireOwner(c, userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.userUseCase.UpdatePassword(c.Request.Context(), req.ToInput(userID)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// DeleteHandler removes the caller's account.
// DELETE /api/users/delete/:userId - Requires authentication and ownership.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	if err := h.requireOwner(c, userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.userUseCase.DeleteUser(c.Request.Context(), userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// parseUserID reads the :userId path parameter and writes a 400 when it is malformed.
func (h *UserHandler) parseUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid user id"), h.logger)
		return uuid.Nil, false
	}
	return userID, true
}

// requireOwner checks that the session belongs to the target account.
func (h *UserHandler) requireOwner(c *gin.Context, target uuid.UUID) error {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		return apperrors.ErrUnauthorized
	}
	if !identity.HasUserID() || identity.UserID != target {
		return domain.ErrNotAccountOwner
	}
	return nil
}

package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/gymbuddy/internal/errors"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// ErrInvalidPagination is returned for offset or limit values outside the accepted range.
var ErrInvalidPagination = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid pagination")

// ParsePagination reads the offset and limit query parameters.
// Offset defaults to 0, limit defaults to 50 and may not exceed 100.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, apperrors.Wrap(ErrInvalidPagination, "offset must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, 0, apperrors.Wrap(ErrInvalidPagination, "limit must be between 1 and 100")
	}

	return offset, limit, nil
}

package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// Pagination bounds applied by ParsePagination.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ParsePagination safely parses and validates offset and limit query parameters.
// Offset defaults to 0 and limit to DefaultLimit; limit cannot exceed MaxLimit.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			"invalid offset parameter: must be a non-negative integer",
		)
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 || limit > MaxLimit {
		return 0, 0, apperrors.Wrapf(
			apperrors.ErrInvalidInput,
			"invalid limit parameter: must be between 1 and %d",
			MaxLimit,
		)
	}

	return offset, limit, nil
}

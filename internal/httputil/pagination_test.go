package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/storefront/internal/errors"
	"github.com/allisson/storefront/internal/httputil"
)

func parseOrdersQuery(t *testing.T, query string) (int, int, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, "/v1/orders"+query, nil)
	require.NoError(t, err)
	c.Request = req

	return httputil.ParsePagination(c)
}

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		offset, limit, err := parseOrdersQuery(t, "")
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, httputil.DefaultLimit, limit)
	})

	t.Run("explicit page", func(t *testing.T) {
		offset, limit, err := parseOrdersQuery(t, "?offset=40&limit=20&status=pending")
		require.NoError(t, err)
		assert.Equal(t, 40, offset)
		assert.Equal(t, 20, limit)
	})

	t.Run("limit at maximum", func(t *testing.T) {
		_, limit, err := parseOrdersQuery(t, "?limit=100")
		require.NoError(t, err)
		assert.Equal(t, httputil.MaxLimit, limit)
	})

	rejected := map[string]string{
		"?offset=-1":  "invalid offset parameter",
		"?offset=abc": "invalid offset parameter",
		"?limit=0":    "invalid limit parameter: must be between 1 and 100",
		"?limit=101":  "invalid limit parameter: must be between 1 and 100",
		"?limit=xyz":  "invalid limit parameter",
	}
	for query, msg := range rejected {
		t.Run("rejects "+query, func(t *testing.T) {
			offset, limit, err := parseOrdersQuery(t, query)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.ErrorContains(t, err, msg)
			assert.Zero(t, offset)
			assert.Zero(t, limit)
		})
	}
}

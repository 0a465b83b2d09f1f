package params

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func fromQuery(t *testing.T, query string) QueryParams {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", "/api/events?"+query, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, QueryParams{Page: 1, Limit: 20}, fromQuery(t, ""))
	assert.Equal(t, QueryParams{Page: 3, Limit: 50}, fromQuery(t, "page=3&limit=50"))
	// Garbage and non-positive values fall back to defaults.
	assert.Equal(t, QueryParams{Page: 1, Limit: 20}, fromQuery(t, "page=abc&limit=-5"))
	// Limit is capped.
	assert.Equal(t, 100, fromQuery(t, "limit=5000").Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, QueryParams{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, QueryParams{Page: 3, Limit: 20}.Offset())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "page=2&limit=10", QueryParams{Page: 2, Limit: 10}.CacheKey())
}

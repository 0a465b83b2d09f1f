package params

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// QueryParams carries pagination values parsed from the query string.
type QueryParams struct {
	Page  int
	Limit int
}

// FromContext parses page/limit with clamped defaults.
func FromContext(c echo.Context) QueryParams {
	p := QueryParams{Page: DefaultPage, Limit: DefaultLimit}

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p QueryParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// CacheKey renders the params into a stable cache key fragment.
func (p QueryParams) CacheKey() string {
	return fmt.Sprintf("page=%d&limit=%d", p.Page, p.Limit)
}

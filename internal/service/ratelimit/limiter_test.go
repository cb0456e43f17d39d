package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xhttp "TradeLens/pkg/http"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(rate float64, burst int) (*Limiter, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(rate, burst)
	l.now = c.now
	return l, c
}

func TestLimiter_BurstThenRefill(t *testing.T) {
	l, c := newTestLimiter(2, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("a"), "request %d", i)
	}
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "keys are independent")

	c.advance(500 * time.Millisecond)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	c.advance(time.Hour)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("a"))
	}
	assert.False(t, l.Allow("a"), "refill is capped at burst")
}

func TestLimiter_Sweep(t *testing.T) {
	l, c := newTestLimiter(1, 1)
	l.Allow("a")
	c.advance(2 * time.Minute)
	l.Allow("b")

	assert.Equal(t, 1, l.Sweep(time.Minute))
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Middleware(t *testing.T) {
	l, _ := newTestLimiter(1, 1)
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) { _ = xhttp.AppErrorResponse(c, err) }
	e.Use(l.Middleware("/metrics"))
	e.GET("/api/stocks", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, do("/api/stocks").Code)
	rec := do("/api/stocks")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "ERR_RATE_LIMITED")

	assert.Equal(t, http.StatusOK, do("/metrics").Code)
}

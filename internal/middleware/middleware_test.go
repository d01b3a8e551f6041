package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fathima-sithara/social-service/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestID(t *testing.T) {
	req := require.New(t)
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetRequestID(c)) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	req.NoError(err)
	req.NotEmpty(resp.Header.Get(HeaderRequestID))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderRequestID, "abc-123")
	resp, err = app.Test(r)
	req.NoError(err)
	req.Equal("abc-123", resp.Header.Get(HeaderRequestID))
}

func TestLogger_RecordsMetricsWithFinalStatus(t *testing.T) {
	req := require.New(t)
	m := metrics.New()
	app := fiber.New()
	app.Use(RequestID(), Logger(zap.NewNop(), m))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(http.StatusTeapot, "nope") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	req.NoError(err)
	req.Equal(http.StatusTeapot, resp.StatusCode)

	req.Equal(1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/ok", "200")))
	req.Equal(1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/boom", "418")))
}

func TestIPRateLimiter(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1 per minute leaves only the burst of 5
	l := NewIPRateLimiter(ctx, 1, zap.NewNop())
	app := fiber.New()
	app.Use(l.Handler())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		req.NoError(err)
		req.Equal(http.StatusOK, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	req.NoError(err)
	req.Equal(http.StatusTooManyRequests, resp.StatusCode)
}

func TestIPRateLimiter_Sweep(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewIPRateLimiter(ctx, 60, zap.NewNop())

	l.getLimiter("10.0.0.1")
	l.sweep(time.Now().Add(-time.Minute))
	_, ok := l.visitors.Load("10.0.0.1")
	req.True(ok)

	l.sweep(time.Now().Add(time.Minute))
	_, ok = l.visitors.Load("10.0.0.1")
	req.False(ok)
}

type fakeCounter struct {
	counts  map[string]int64
	expired []string
	err     error
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, key string, _ time.Duration) *redis.BoolCmd {
	f.expired = append(f.expired, key)
	return redis.NewBoolResult(true, nil)
}

func TestRedisRateLimiter(t *testing.T) {
	req := require.New(t)
	fc := &fakeCounter{counts: map[string]int64{}}
	l := NewRedisRateLimiter(fc, "test", 2, time.Minute, zap.NewNop())
	app := fiber.New()
	app.Use(l.MiddlewareByKey(func(c *fiber.Ctx) string { return c.Get("X-Client") }))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	call := func(client string) int {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Client", client)
		resp, err := app.Test(r)
		req.NoError(err)
		return resp.StatusCode
	}

	req.Equal(http.StatusOK, call("a"))
	req.Equal(http.StatusOK, call("a"))
	req.Equal(http.StatusTooManyRequests, call("a"))
	req.Equal(http.StatusOK, call("b"))
	req.Equal([]string{"test:a", "test:b"}, fc.expired)

	fc.err = context.DeadlineExceeded
	req.Equal(http.StatusInternalServerError, call("c"))
}

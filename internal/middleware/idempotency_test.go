package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/puma-pay/puma_gateway/internal/logging"
)

func setupReplayApp(t *testing.T) (*fiber.App, *atomic.Int64, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Use(IdempotentReplay(cache, time.Minute, logging.Discard()))

	var hits atomic.Int64
	app.Post("/redemptions", func(c *fiber.Ctx) error {
		hits.Add(1)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "attempt": hits.Load()})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, &hits, cleanup
}

func TestReplayPassesThroughWithoutHeader(t *testing.T) {
	app, hits, cleanup := setupReplayApp(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/redemptions", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200 got %d", resp.StatusCode)
		}
	}

	if hits.Load() != 2 {
		t.Fatalf("requests without the header must not be deduplicated, handler ran %d times", hits.Load())
	}
}

func TestReplayReturnsStoredResponseForDuplicateKey(t *testing.T) {
	app, hits, cleanup := setupReplayApp(t)
	defer cleanup()

	send := func() string {
		req := httptest.NewRequest(fiber.MethodPost, "/redemptions", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(idempotencyKeyHeader, "op-42")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200 got %d", resp.StatusCode)
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		resp.Body.Close()
		return string(raw)
	}

	first := send()
	second := send()

	if hits.Load() != 1 {
		t.Fatalf("expected handler to run once, ran %d times", hits.Load())
	}
	if first != second {
		t.Fatalf("expected replayed body %s, got %s", first, second)
	}
}

func TestReplayDistinctKeysRunIndependently(t *testing.T) {
	app, hits, cleanup := setupReplayApp(t)
	defer cleanup()

	for _, key := range []string{"op-1", "op-2"} {
		req := httptest.NewRequest(fiber.MethodPost, "/redemptions", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(idempotencyKeyHeader, key)
		if _, err := app.Test(req); err != nil {
			t.Fatalf("app.Test: %v", err)
		}
	}

	if hits.Load() != 2 {
		t.Fatalf("distinct keys must each run the handler, ran %d times", hits.Load())
	}
}

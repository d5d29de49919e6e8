package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/puma-pay/puma_gateway/internal/config"
	"github.com/puma-pay/puma_gateway/internal/gateway"
	"github.com/puma-pay/puma_gateway/internal/journal"
	"github.com/puma-pay/puma_gateway/internal/middleware"
	"github.com/puma-pay/puma_gateway/internal/partner"
	"github.com/puma-pay/puma_gateway/internal/webhook"
)

// Deps aggregates shared dependencies required to wire routes. DB and Cache
// are optional; the gateway runs without them, losing only the journal and
// the client-side replay/rate-limit layers.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var recorder journal.Recorder
	if d.DB != nil {
		recorder = journal.NewPostgresRecorder(d.DB)
	} else {
		recorder = journal.NewMemoryRecorder()
	}

	partnerClient := partner.NewClient(d.Cfg.PartnerBaseURL, d.Cfg.Credentials(), d.Logger)
	gatewaySvc := gateway.NewService(partnerClient, recorder, d.Logger)
	gatewayHandler := gateway.NewHandler(gatewaySvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterGatewayRoutes(api, gatewayHandler, d)

	dispatcher := webhook.NewLogDispatcher(d.Logger)
	webhookHandler := webhook.NewHandler(d.Cfg.WebhookSecret, dispatcher, d.Logger)
	RegisterWebhookRoutes(app, webhookHandler)

	return nil
}

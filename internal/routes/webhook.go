package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/puma-pay/puma_gateway/internal/webhook"
)

// RegisterWebhookRoutes wires the inbound partner notification endpoint.
// The path sits outside /api/v1 because it is the partner's surface, not
// the client application's.
func RegisterWebhookRoutes(app *fiber.App, h *webhook.Handler) {
	app.Post("/webhooks/partner", h.Receive)
}

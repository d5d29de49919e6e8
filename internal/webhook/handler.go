package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// SignatureHeader carries the partner's hex-encoded HMAC-SHA256 over the raw
// request body.
const SignatureHeader = "X-Signature"

// Handler receives partner notifications, verifies their signature and hands
// them to the dispatcher.
type Handler struct {
	secret     string
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewHandler constructs a webhook handler. An empty secret disables
// verification; that deployment choice is logged on every unsigned accept.
func NewHandler(secret string, dispatcher Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{secret: secret, dispatcher: dispatcher, logger: logger}
}

type inboundEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Receive handles POSTed partner events. Verification runs only when both a
// configured secret and a supplied signature are present; a failed check
// rejects with 401 before any dispatch. Once dispatched the response is
// always a 200 acknowledgment so the partner does not retry indefinitely.
func (h *Handler) Receive(c *fiber.Ctx) error {
	body := c.Body()
	supplied := c.Get(SignatureHeader)

	if h.secret != "" && supplied != "" {
		if !Verify(body, supplied, h.secret) {
			h.logger.Warn("webhook signature mismatch", "signature", supplied)
			return fiber.NewError(http.StatusUnauthorized, "invalid webhook signature")
		}
	} else if h.secret == "" {
		h.logger.Warn("webhook secret not configured, accepting unsigned event")
	}

	var evt inboundEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		h.logger.Warn("webhook body is not valid JSON", "error", err)
	}

	h.dispatcher.Dispatch(c.UserContext(), Event{
		Kind: ParseKind(evt.Type),
		Type: evt.Type,
		Data: evt.Data,
	})

	return c.Status(http.StatusOK).JSON(fiber.Map{"received": true})
}

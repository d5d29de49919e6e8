package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/puma-pay/puma_gateway/internal/gateway"
	"github.com/puma-pay/puma_gateway/internal/middleware"
)

// RegisterGatewayRoutes wires the partner gateway endpoints. Money-movement
// POSTs additionally get the Redis-backed rate-limit and replay layers when
// a cache is configured; the mock deposit route only exists outside
// production.
func RegisterGatewayRoutes(r fiber.Router, h *gateway.Handler, d Deps) {
	r.Get("/bank-accounts", h.ListBankAccounts)
	r.Post("/bank-accounts", h.RegisterBankAccount)
	r.Post("/clabes", h.CreateCLABE)
	r.Get("/transactions", h.ListTransactions)
	r.Get("/account", h.AccountDetails)

	movement := func(handler fiber.Handler) []fiber.Handler {
		if d.Cache == nil {
			return []fiber.Handler{handler}
		}
		return []fiber.Handler{
			middleware.MoneyMovementRateLimit(d.Cache, d.Cfg.RateLimitPerMin),
			middleware.IdempotentReplay(d.Cache, d.Cfg.IdempotencyTTL, d.Logger),
			handler,
		}
	}

	r.Post("/redemptions", movement(h.CreateRedemption)...)
	r.Post("/withdrawals", movement(h.CreateWithdrawal)...)
	if !d.Cfg.IsProduction() {
		r.Post("/test-deposits", movement(h.MockDeposit)...)
	}
}

package gateway

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/puma-pay/puma_gateway/internal/partner"
)

// Handler exposes the gateway operations over HTTP. Method enforcement is
// the router's job: a registered path hit with the wrong verb returns 405
// before any handler runs.
type Handler struct {
	service *Service
}

// NewHandler constructs a gateway handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListBankAccounts handles GET /bank-accounts.
func (h *Handler) ListBankAccounts(c *fiber.Ctx) error {
	env, err := h.service.ListBankAccounts(c.UserContext())
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(env)
}

// RegisterBankAccount handles POST /bank-accounts.
func (h *Handler) RegisterBankAccount(c *fiber.Ctx) error {
	var req RegisterBankAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	env, err := h.service.RegisterBankAccount(c.UserContext(), req)
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(env)
}

// CreateCLABE handles POST /clabes.
func (h *Handler) CreateCLABE(c *fiber.Ctx) error {
	env, err := h.service.CreateCLABE(c.UserContext())
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(env)
}

// CreateRedemption handles POST /redemptions.
func (h *Handler) CreateRedemption(c *fiber.Ctx) error {
	var req RedemptionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	env, err := h.service.CreateRedemption(c.UserContext(), req)
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(env)
}

// CreateWithdrawal handles POST /withdrawals.
func (h *Handler) CreateWithdrawal(c *fiber.Ctx) error {
	var req WithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	env, err := h.service.CreateWithdrawal(c.UserContext(), req)
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(env)
}

// MockDeposit handles POST /test-deposits. The route is only registered
// outside production.
func (h *Handler) MockDeposit(c *fiber.Ctx) error {
	var req MockDepositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	env, err := h.service.MockDeposit(c.UserContext(), req)
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(env)
}

// ListTransactions handles GET /transactions.
func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	q := TransactionsQuery{
		Limit:  c.QueryInt("limit", defaultTransactionsLimit),
		Offset: c.QueryInt("offset", defaultTransactionsOffset),
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}

	env, err := h.service.ListTransactions(c.UserContext(), q)
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(env)
}

// AccountDetails handles GET /account.
func (h *Handler) AccountDetails(c *fiber.Ctx) error {
	env, err := h.service.AccountDetails(c.UserContext())
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(env)
}

// httpError maps service errors onto client-facing statuses: validation
// failures are 400, everything else (missing credentials, upstream
// rejections, transport faults) is 500 with the message surfaced as-is.
func httpError(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return fiber.NewError(http.StatusBadRequest, ve.Reason)
	}
	if errors.Is(err, partner.ErrMissingCredentials) {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	var ue *partner.UpstreamError
	if errors.As(err, &ue) {
		return fiber.NewError(http.StatusInternalServerError, ue.Error())
	}
	return fiber.NewError(http.StatusInternalServerError, err.Error())
}

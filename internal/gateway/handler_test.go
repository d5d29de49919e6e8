package gateway

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/puma-pay/puma_gateway/internal/logging"
	"github.com/puma-pay/puma_gateway/internal/partner"
)

func newGatewayApp(caller partner.Caller) *fiber.App {
	svc := NewService(caller, nil, logging.Discard())
	h := NewHandler(svc)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/bank-accounts", h.ListBankAccounts)
	api.Post("/bank-accounts", h.RegisterBankAccount)
	api.Post("/clabes", h.CreateCLABE)
	api.Post("/redemptions", h.CreateRedemption)
	api.Post("/withdrawals", h.CreateWithdrawal)
	api.Post("/test-deposits", h.MockDeposit)
	api.Get("/transactions", h.ListTransactions)
	api.Get("/account", h.AccountDetails)
	return app
}

func postJSON(app *fiber.App, t *testing.T, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode, string(raw)
}

func TestRegisterBankAccountSucceeds(t *testing.T) {
	caller := &fakeCaller{resp: wrappedResponse(`{"id":"bank-1"}`)}
	app := newGatewayApp(caller)

	body := `{"tag":"x","recipient_legal_name":"Ana","clabe":"012345678901234567","ownership":"COMPANY_OWNED"}`
	status, raw := postJSON(app, t, "/api/v1/bank-accounts", body)

	if status != fiber.StatusOK {
		t.Fatalf("expected 200 got %d: %s", status, raw)
	}

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.Success {
		t.Fatalf("expected success:true, got %s", raw)
	}
	if len(caller.calls) != 1 {
		t.Fatalf("expected exactly one dispatch, got %d", len(caller.calls))
	}
}

func TestRegisterBankAccountRejectsShortCLABE(t *testing.T) {
	caller := &fakeCaller{resp: wrappedResponse(`{}`)}
	app := newGatewayApp(caller)

	body := `{"tag":"x","recipient_legal_name":"Ana","clabe":"1234","ownership":"COMPANY_OWNED"}`
	status, raw := postJSON(app, t, "/api/v1/bank-accounts", body)

	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 got %d", status)
	}
	if !strings.Contains(raw, "18 digits") {
		t.Fatalf("expected clabe message, got %s", raw)
	}
	if len(caller.calls) != 0 {
		t.Fatalf("signing and dispatch must not run for invalid input")
	}
}

func TestRedemptionBelowMinimumRejected(t *testing.T) {
	caller := &fakeCaller{resp: wrappedResponse(`{}`)}
	app := newGatewayApp(caller)

	status, raw := postJSON(app, t, "/api/v1/redemptions", `{"amount":50,"destination_bank_account_id":"acct-1"}`)

	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 got %d", status)
	}
	if !strings.Contains(raw, "at least 100") {
		t.Fatalf("expected minimum message, got %s", raw)
	}
	if len(caller.calls) != 0 {
		t.Fatalf("no partner call may be made before validation passes")
	}
}

func TestWrongMethodIsRejectedBeforeValidation(t *testing.T) {
	caller := &fakeCaller{resp: wrappedResponse(`{}`)}
	app := newGatewayApp(caller)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/redemptions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", resp.StatusCode)
	}
	if len(caller.calls) != 0 {
		t.Fatalf("no dispatch on method mismatch")
	}
}

func TestMissingCredentialsYield500(t *testing.T) {
	caller := &fakeCaller{err: partner.ErrMissingCredentials}
	app := newGatewayApp(caller)

	status, raw := postJSON(app, t, "/api/v1/redemptions", `{"amount":150,"destination_bank_account_id":"acct-1"}`)

	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", status)
	}
	if !strings.Contains(raw, "credentials") {
		t.Fatalf("expected configuration message, got %s", raw)
	}
}

func TestUpstreamErrorBodySurfacesVerbatim(t *testing.T) {
	caller := &fakeCaller{err: &partner.UpstreamError{StatusCode: 409, Body: []byte(`{"error":{"code":"duplicate_clabe"}}`)}}
	app := newGatewayApp(caller)

	status, raw := postJSON(app, t, "/api/v1/clabes", "")

	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", status)
	}
	if !strings.Contains(raw, "duplicate_clabe") {
		t.Fatalf("expected partner error body, got %s", raw)
	}
}

func TestTransactionsQueryPassThrough(t *testing.T) {
	caller := &fakeCaller{resp: partner.Response{Kind: partner.BodyRaw, Data: json.RawMessage(`[]`)}}
	app := newGatewayApp(caller)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/transactions?limit=10&offset=20&type=DEPOSIT", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}

	path := caller.calls[0].Path
	if !strings.Contains(path, "limit=10") || !strings.Contains(path, "offset=20") || !strings.Contains(path, "type=DEPOSIT") {
		t.Fatalf("expected filters in signed path, got %s", path)
	}
}

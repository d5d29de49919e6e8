package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/puma-pay/puma_gateway/internal/journal"
	"github.com/puma-pay/puma_gateway/internal/partner"
)

// Partner REST paths. Paths are signed together with the query string, so
// list operations append their encoded filters before dispatch.
const (
	bankAccountsPath = "/mint_platform/v1/accounts/banks"
	clabesPath       = "/mint_platform/v1/clabes"
	redemptionsPath  = "/mint_platform/v1/redemptions"
	withdrawalsPath  = "/mint_platform/v1/withdrawals"
	testDepositsPath = "/spei/test/deposits"
	transactionsPath = "/mint_platform/v1/transactions"
	accountPath      = "/mint_platform/v1/account"
)

// defaultAsset is the settlement currency used when a redemption omits one.
const defaultAsset = "mxn"

const (
	defaultTransactionsLimit  = 50
	defaultTransactionsOffset = 0
)

// Service composes each gateway operation: validate, sign-and-dispatch via
// the partner client, then wrap the partner data in the response envelope.
// It holds no mutable state; every invocation is independent.
type Service struct {
	partner partner.Caller
	journal journal.Recorder
	logger  *slog.Logger
	newKey  func() string
}

// NewService constructs the gateway service. A nil recorder disables the
// operation journal.
func NewService(caller partner.Caller, recorder journal.Recorder, logger *slog.Logger) *Service {
	return &Service{partner: caller, journal: recorder, logger: logger, newKey: newIdempotencyKey}
}

// ListBankAccounts fetches the bank accounts registered with the partner.
func (s *Service) ListBankAccounts(ctx context.Context) (Envelope, error) {
	resp, err := s.partner.Do(ctx, http.MethodGet, bankAccountsPath, nil, "")
	if err != nil {
		return Envelope{}, err
	}
	return s.envelope(resp, Metadata{}), nil
}

// RegisterBankAccount registers a payout destination. The CLABE format is
// checked before any signed call is issued.
func (s *Service) RegisterBankAccount(ctx context.Context, req RegisterBankAccountRequest) (Envelope, error) {
	if err := validateBankAccountRegistration(req); err != nil {
		return Envelope{}, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode bank account registration: %w", err)
	}

	resp, err := s.partner.Do(ctx, http.MethodPost, bankAccountsPath, body, "")
	s.record(ctx, "register_bank_account", "", err)
	if err != nil {
		return Envelope{}, err
	}
	return s.envelope(resp, Metadata{}), nil
}

// CreateCLABE provisions a fresh deposit CLABE on the partner side.
func (s *Service) CreateCLABE(ctx context.Context) (Envelope, error) {
	resp, err := s.partner.Do(ctx, http.MethodPost, clabesPath, nil, "")
	if err != nil {
		return Envelope{}, err
	}
	return s.envelope(resp, Metadata{}), nil
}

// CreateRedemption converts balance into a SPEI payout. A fresh idempotency
// key is minted per attempt and echoed in the envelope metadata.
func (s *Service) CreateRedemption(ctx context.Context, req RedemptionRequest) (Envelope, error) {
	if err := validateRedemption(req); err != nil {
		return Envelope{}, err
	}
	if req.Asset == "" {
		req.Asset = defaultAsset
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode redemption: %w", err)
	}

	key := s.newKey()
	resp, err := s.partner.Do(ctx, http.MethodPost, redemptionsPath, body, key)
	s.record(ctx, "create_redemption", key, err)
	if err != nil {
		return Envelope{}, err
	}
	return s.envelope(resp, Metadata{IdempotencyKey: key}), nil
}

// CreateWithdrawal moves tokens to an on-chain address, with the same
// per-attempt idempotency key handling as redemptions.
func (s *Service) CreateWithdrawal(ctx context.Context, req WithdrawalRequest) (Envelope, error) {
	if err := validateWithdrawal(req); err != nil {
		return Envelope{}, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode withdrawal: %w", err)
	}

	key := s.newKey()
	resp, err := s.partner.Do(ctx, http.MethodPost, withdrawalsPath, body, key)
	s.record(ctx, "create_withdrawal", key, err)
	if err != nil {
		return Envelope{}, err
	}
	return s.envelope(resp, Metadata{IdempotencyKey: key}), nil
}

// MockDeposit simulates an inbound SPEI transfer on the partner's test rail.
func (s *Service) MockDeposit(ctx context.Context, req MockDepositRequest) (Envelope, error) {
	if err := validateMockDeposit(req); err != nil {
		return Envelope{}, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode mock deposit: %w", err)
	}

	resp, err := s.partner.Do(ctx, http.MethodPost, testDepositsPath, body, "")
	s.record(ctx, "mock_deposit", "", err)
	if err != nil {
		return Envelope{}, err
	}
	return s.envelope(resp, Metadata{}), nil
}

// ListTransactions fetches the partner transaction feed. Limit and offset
// default to 50/0 and are echoed back in the metadata; status and type are
// optional pass-through filters.
func (s *Service) ListTransactions(ctx context.Context, q TransactionsQuery) (Envelope, error) {
	if q.Limit <= 0 {
		q.Limit = defaultTransactionsLimit
	}
	if q.Offset < 0 {
		q.Offset = defaultTransactionsOffset
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset))
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}

	resp, err := s.partner.Do(ctx, http.MethodGet, transactionsPath+"?"+params.Encode(), nil, "")
	if err != nil {
		return Envelope{}, err
	}
	return s.envelope(resp, Metadata{Limit: &q.Limit, Offset: &q.Offset}), nil
}

// AccountDetails fetches the partner account metadata.
func (s *Service) AccountDetails(ctx context.Context) (Envelope, error) {
	resp, err := s.partner.Do(ctx, http.MethodGet, accountPath, nil, "")
	if err != nil {
		return Envelope{}, err
	}
	return s.envelope(resp, Metadata{}), nil
}

func (s *Service) envelope(resp partner.Response, meta Metadata) Envelope {
	meta.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	return Envelope{Success: true, Payload: resp.Data, Metadata: meta}
}

// record writes the terminal status of a dispatched money movement to the
// journal. Journal failures are logged, never surfaced to the client.
func (s *Service) record(ctx context.Context, operation, key string, callErr error) {
	if s.journal == nil {
		return
	}
	entry := journal.Entry{Operation: operation, IdempotencyKey: key, Status: journal.StatusSucceeded}
	if callErr != nil {
		entry.Status = journal.StatusFailed
		entry.Detail = callErr.Error()
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		s.logger.Warn("journal record failed", "operation", operation, "error", err)
	}
}

package gateway

import "encoding/json"

// RegisterBankAccountRequest registers a payout destination with the partner.
type RegisterBankAccountRequest struct {
	Tag                string `json:"tag"`
	RecipientLegalName string `json:"recipient_legal_name"`
	CLABE              string `json:"clabe"`
	Ownership          string `json:"ownership"`
}

// RedemptionRequest converts settlement-currency balance into a SPEI payout
// to a previously registered bank account.
type RedemptionRequest struct {
	Amount                   float64 `json:"amount"`
	DestinationBankAccountID string  `json:"destination_bank_account_id"`
	Asset                    string  `json:"asset"`
}

// WithdrawalRequest moves tokens to an on-chain address. Compliance must be
// present in the client payload; an empty object is acceptable.
type WithdrawalRequest struct {
	Address    string          `json:"address"`
	Amount     float64         `json:"amount"`
	Asset      string          `json:"asset"`
	Blockchain string          `json:"blockchain"`
	Compliance json.RawMessage `json:"compliance"`
}

// MockDepositRequest simulates an inbound SPEI transfer on the partner's
// test environment. Never routed in production.
type MockDepositRequest struct {
	Amount        string `json:"amount"`
	ReceiverCLABE string `json:"receiver_clabe"`
	ReceiverName  string `json:"receiver_name"`
	SenderName    string `json:"sender_name"`
}

// TransactionsQuery carries the optional list filters.
type TransactionsQuery struct {
	Limit  int
	Offset int
	Status string
	Type   string
}

// Metadata is the operation-specific half of the response envelope.
type Metadata struct {
	Timestamp      string `json:"timestamp"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
	Limit          *int   `json:"limit,omitempty"`
	Offset         *int   `json:"offset,omitempty"`
}

// Envelope is the uniform success shape returned to the client for every
// gateway operation.
type Envelope struct {
	Success  bool            `json:"success"`
	Payload  json.RawMessage `json:"payload"`
	Metadata Metadata        `json:"metadata"`
}

package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Kind is the closed set of partner notification types this gateway knows
// about. Adding a kind means adding a constant, a ParseKind case and a
// Dispatch branch; anything else lands on KindUnknown and is acknowledged
// without action.
type Kind int

const (
	KindUnknown Kind = iota
	KindDepositReceived
	KindIssuanceCompleted
	KindRedemptionCompleted
	KindRedemptionFailed
)

const (
	typeDepositReceived     = "DEPOSIT_RECEIVED"
	typeIssuanceCompleted   = "ISSUANCE_COMPLETED"
	typeRedemptionCompleted = "REDEMPTION_COMPLETED"
	typeRedemptionFailed    = "REDEMPTION_FAILED"
)

// ParseKind maps the partner's type discriminator onto a Kind.
func ParseKind(eventType string) Kind {
	switch eventType {
	case typeDepositReceived:
		return KindDepositReceived
	case typeIssuanceCompleted:
		return KindIssuanceCompleted
	case typeRedemptionCompleted:
		return KindRedemptionCompleted
	case typeRedemptionFailed:
		return KindRedemptionFailed
	default:
		return KindUnknown
	}
}

// Event is a verified partner notification ready for dispatch. Data is kept
// opaque; persistence, if any, belongs to downstream consumers.
type Event struct {
	Kind Kind
	Type string
	Data json.RawMessage
}

// Dispatcher routes events to kind-specific handling.
type Dispatcher interface {
	Dispatch(ctx context.Context, evt Event)
}

// LogDispatcher is the default Dispatcher: each known kind gets a structured
// log entry, unknown kinds are logged and ignored. Downstream actions (ledger
// credit, client notification) live with collaborators, not here.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher constructs the logging dispatcher.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Dispatch switches on the event kind. The switch is exhaustive over Kind.
func (d *LogDispatcher) Dispatch(_ context.Context, evt Event) {
	switch evt.Kind {
	case KindDepositReceived:
		d.logger.Info("partner deposit received", "type", evt.Type, "data", string(evt.Data))
	case KindIssuanceCompleted:
		d.logger.Info("partner issuance completed", "type", evt.Type, "data", string(evt.Data))
	case KindRedemptionCompleted:
		d.logger.Info("partner redemption completed", "type", evt.Type, "data", string(evt.Data))
	case KindRedemptionFailed:
		d.logger.Warn("partner redemption failed", "type", evt.Type, "data", string(evt.Data))
	case KindUnknown:
		d.logger.Info("ignoring unhandled webhook event", "type", evt.Type)
	}
}

package ledger

import (
	"github.com/erp/passbook/internal/domain/shared"
	"github.com/google/uuid"
)

// EventTypeLedgerInvalidated is published whenever a write makes an
// account's assembled passbook stale
const EventTypeLedgerInvalidated = "LedgerInvalidated"

// LedgerInvalidatedEvent tells readers to re-fetch an account's passbook
type LedgerInvalidatedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID         `json:"account_id"`
	Source    TransactionSource `json:"source"`
	Reference string            `json:"reference"`
}

// NewLedgerInvalidatedEvent creates the event for a write from source
func NewLedgerInvalidatedEvent(accountID uuid.UUID, source TransactionSource, reference string) *LedgerInvalidatedEvent {
	return &LedgerInvalidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLedgerInvalidated, accountID),
		AccountID:       accountID,
		Source:          source,
		Reference:       reference,
	}
}

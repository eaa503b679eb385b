package ledger

import (
	"strings"
	"time"

	"github.com/erp/passbook/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionChallan is a weaver's delivery document. Every challan credits
// the account with quantity × rate, where the rate comes from the first
// entry of its quality specification.
type ProductionChallan struct {
	shared.BaseEntity
	AccountID   uuid.UUID
	Date        time.Time
	Reference   string
	Quantity    decimal.Decimal
	QualitySpec []byte
}

// NewProductionChallan creates a challan for an account.
// The quality specification is stored as given and only interpreted when read.
func NewProductionChallan(accountID uuid.UUID, date time.Time, reference string, quantity decimal.Decimal, qualitySpec []byte) (*ProductionChallan, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_CHALLAN_DATE", "Challan date is required")
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_CHALLAN_REFERENCE", "Challan reference cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &ProductionChallan{
		BaseEntity:  shared.NewBaseEntity(),
		AccountID:   accountID,
		Date:        date,
		Reference:   reference,
		Quantity:    quantity,
		QualitySpec: qualitySpec,
	}, nil
}

// Rate returns the unit rate from the quality specification, zero if unreadable
func (c *ProductionChallan) Rate() decimal.Decimal {
	return ParseQualitySpec(c.QualitySpec).FirstRate()
}

// CreditAmount returns quantity × rate
func (c *ProductionChallan) CreditAmount() decimal.Decimal {
	return c.Quantity.Mul(c.Rate())
}

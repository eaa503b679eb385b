package ledger

import (
	"strings"
	"time"

	"github.com/erp/passbook/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherType is either Credit or Debit
type VoucherType string

const (
	VoucherTypeCredit VoucherType = "Credit"
	VoucherTypeDebit  VoucherType = "Debit"
)

// IsValid reports whether t is one of the two voucher types
func (t VoucherType) IsValid() bool {
	return t == VoucherTypeCredit || t == VoucherTypeDebit
}

// Code returns the single-letter code used in voucher references
func (t VoucherType) Code() string {
	if t == VoucherTypeCredit {
		return "C"
	}
	return "D"
}

func (t VoucherType) String() string {
	return string(t)
}

// ParseVoucherType parses "credit"/"debit" case-insensitively
func ParseVoucherType(s string) (VoucherType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "credit":
		return VoucherTypeCredit, nil
	case "debit":
		return VoucherTypeDebit, nil
	default:
		return "", shared.NewDomainError("INVALID_VOUCHER_TYPE", "Voucher type must be Credit or Debit")
	}
}

// PaymentVoucher is a manually entered credit or debit against an account.
// ID is assigned by the store; zero means the voucher has no stable identity yet.
type PaymentVoucher struct {
	ID        int64
	AccountID uuid.UUID
	Date      time.Time
	Purpose   string
	Type      VoucherType
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// NewPaymentVoucher creates an unsaved voucher
func NewPaymentVoucher(accountID uuid.UUID, date time.Time, purpose string, voucherType VoucherType, amount decimal.Decimal) (*PaymentVoucher, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_DATE", "Voucher date is required")
	}
	if !voucherType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_TYPE", "Voucher type must be Credit or Debit")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	purpose = strings.TrimSpace(purpose)
	if len(purpose) > 500 {
		return nil, shared.NewDomainError("INVALID_PURPOSE", "Purpose cannot exceed 500 characters")
	}

	return &PaymentVoucher{
		AccountID: accountID,
		Date:      date,
		Purpose:   purpose,
		Type:      voucherType,
		Amount:    amount,
		CreatedAt: time.Now(),
	}, nil
}

// IsCredit reports whether the voucher credits the account
func (v *PaymentVoucher) IsCredit() bool {
	return v.Type == VoucherTypeCredit
}

package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionSource records which upstream stream a transaction came from
type TransactionSource string

const (
	SourceProduction TransactionSource = "production"
	SourceVoucher    TransactionSource = "voucher"
)

// Transaction is the common shape challans and vouchers are normalized into.
// At most one of Credit and Debit is non-zero.
type Transaction struct {
	Date   time.Time
	Detail string
	Remark string
	Credit decimal.Decimal
	Debit  decimal.Decimal
	Source TransactionSource
}

// Net returns credit minus debit
func (t Transaction) Net() decimal.Decimal {
	return t.Credit.Sub(t.Debit)
}

// LedgerEntry is a transaction with the running balance up to and including it
type LedgerEntry struct {
	Transaction
	Balance decimal.Decimal
}

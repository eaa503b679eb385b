package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of ledger dates
const DateLayout = "2006-01-02"

// ParseDate accepts either a calendar date or an RFC 3339 timestamp
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must be YYYY-MM-DD or RFC 3339")
}

// LedgerEntryResponse is one passbook line
type LedgerEntryResponse struct {
	Date    string          `json:"date"`
	Detail  string          `json:"detail"`
	Remark  string          `json:"remark"`
	Credit  decimal.Decimal `json:"credit"`
	Debit   decimal.Decimal `json:"debit"`
	Balance decimal.Decimal `json:"balance"`
	Source  string          `json:"source"`
}

// SummaryResponse holds ledger totals
type SummaryResponse struct {
	AccountID   uuid.UUID       `json:"account_id"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	Balance     decimal.Decimal `json:"balance"`
}

// PassbookResponse is one page of an account's passbook, newest entry first
type PassbookResponse struct {
	AccountID   uuid.UUID             `json:"account_id"`
	AccountName string                `json:"account_name"`
	Entries     []LedgerEntryResponse `json:"entries"`
	Summary     SummaryResponse       `json:"summary"`
	Total       int64                 `json:"total"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	TotalPages  int                   `json:"total_pages"`
}

// ToLedgerEntryResponse converts a domain ledger entry
func ToLedgerEntryResponse(e ledger.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		Date:    e.Date.Format(DateLayout),
		Detail:  e.Detail,
		Remark:  e.Remark,
		Credit:  e.Credit,
		Debit:   e.Debit,
		Balance: e.Balance,
		Source:  string(e.Source),
	}
}

// ToSummaryResponse converts a domain summary
func ToSummaryResponse(accountID uuid.UUID, s ledger.Summary) SummaryResponse {
	return SummaryResponse{
		AccountID:   accountID,
		TotalCredit: s.TotalCredit,
		TotalDebit:  s.TotalDebit,
		Balance:     s.Balance,
	}
}

// ToPassbookResponse builds the response for one page of a passbook
func ToPassbookResponse(account *ledger.Account, page shared.Paginated[ledger.LedgerEntry], summary ledger.Summary) *PassbookResponse {
	entries := make([]LedgerEntryResponse, len(page.Items))
	for i, e := range page.Items {
		entries[i] = ToLedgerEntryResponse(e)
	}
	return &PassbookResponse{
		AccountID:   account.ID,
		AccountName: account.Name,
		Entries:     entries,
		Summary:     ToSummaryResponse(account.ID, summary),
		Total:       page.Total,
		Page:        page.Page,
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages,
	}
}

// RecordVoucherRequest is the body of a voucher entry
type RecordVoucherRequest struct {
	Date    string          `json:"date" binding:"required"`
	Purpose string          `json:"purpose" binding:"max=500"`
	Type    string          `json:"type" binding:"required,oneof=Credit Debit credit debit"`
	Amount  decimal.Decimal `json:"amount"`
}

// VoucherResponse is a voucher with its reference code
type VoucherResponse struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	AccountID uuid.UUID       `json:"account_id"`
	Date      string          `json:"date"`
	Purpose   string          `json:"purpose"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToVoucherResponse converts a sequenced voucher
func ToVoucherResponse(v ledger.SequencedVoucher) VoucherResponse {
	return VoucherResponse{
		ID:        v.ID,
		Code:      v.Code,
		AccountID: v.AccountID,
		Date:      v.Date.Format(DateLayout),
		Purpose:   v.Purpose,
		Type:      v.Type.String(),
		Amount:    v.Amount,
	}
}

// RecordChallanRequest is the body of a production challan entry.
// QualitySpec is stored verbatim whatever its shape.
type RecordChallanRequest struct {
	Date        string          `json:"date" binding:"required"`
	Reference   string          `json:"reference" binding:"required,max=100"`
	Quantity    decimal.Decimal `json:"quantity"`
	QualitySpec json.RawMessage `json:"quality_spec"`
}

// ChallanResponse is a stored challan with its resolved rate
type ChallanResponse struct {
	ID           uuid.UUID       `json:"id"`
	AccountID    uuid.UUID       `json:"account_id"`
	Date         string          `json:"date"`
	Reference    string          `json:"reference"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
	SpecShape    string          `json:"spec_shape"`
}

// ToChallanResponse converts a domain challan
func ToChallanResponse(c *ledger.ProductionChallan) ChallanResponse {
	spec := ledger.ParseQualitySpec(c.QualitySpec)
	rate := spec.FirstRate()
	return ChallanResponse{
		ID:           c.ID,
		AccountID:    c.AccountID,
		Date:         c.Date.Format(DateLayout),
		Reference:    c.Reference,
		Quantity:     c.Quantity,
		Rate:         rate,
		CreditAmount: c.Quantity.Mul(rate),
		SpecShape:    spec.Shape.String(),
	}
}

// CreateAccountRequest registers a ledger account
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// AccountResponse is a ledger account
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToAccountResponse converts a domain account
func ToAccountResponse(a *ledger.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}

package models

import (
	"time"

	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerAccountModel is the persistence model for ledger.Account
type LedgerAccountModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (LedgerAccountModel) TableName() string {
	return "ledger_accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *LedgerAccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// LedgerAccountModelFromDomain creates a persistence model from a domain Account
func LedgerAccountModelFromDomain(a *ledger.Account) *LedgerAccountModel {
	m := &LedgerAccountModel{Name: a.Name}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// ProductionChallanModel is the persistence model for ledger.ProductionChallan.
// QualitySpec is kept verbatim; it is only interpreted when the passbook is built.
type ProductionChallanModel struct {
	BaseModel
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChallanDate time.Time       `gorm:"type:date;not null"`
	Reference   string          `gorm:"type:varchar(100);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QualitySpec []byte          `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ProductionChallanModel) TableName() string {
	return "production_challans"
}

// ToDomain converts the persistence model to a domain ProductionChallan
func (m *ProductionChallanModel) ToDomain() *ledger.ProductionChallan {
	return &ledger.ProductionChallan{
		BaseEntity:  m.BaseModel.ToDomain(),
		AccountID:   m.AccountID,
		Date:        m.ChallanDate,
		Reference:   m.Reference,
		Quantity:    m.Quantity,
		QualitySpec: m.QualitySpec,
	}
}

// ProductionChallanModelFromDomain creates a persistence model from a domain ProductionChallan
func ProductionChallanModelFromDomain(c *ledger.ProductionChallan) *ProductionChallanModel {
	m := &ProductionChallanModel{
		AccountID:   c.AccountID,
		ChallanDate: c.Date,
		Reference:   c.Reference,
		Quantity:    c.Quantity,
		QualitySpec: c.QualitySpec,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// PaymentVoucherModel is the persistence model for ledger.PaymentVoucher.
// The serial ID is the voucher's stable identity.
type PaymentVoucherModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	VoucherDate time.Time       `gorm:"type:date;not null"`
	Purpose     string          `gorm:"type:varchar(500)"`
	VoucherType string          `gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentVoucherModel) TableName() string {
	return "payment_vouchers"
}

// ToDomain converts the persistence model to a domain PaymentVoucher
func (m *PaymentVoucherModel) ToDomain() *ledger.PaymentVoucher {
	return &ledger.PaymentVoucher{
		ID:        m.ID,
		AccountID: m.AccountID,
		Date:      m.VoucherDate,
		Purpose:   m.Purpose,
		Type:      ledger.VoucherType(m.VoucherType),
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
	}
}

// PaymentVoucherModelFromDomain creates a persistence model from a domain PaymentVoucher
func PaymentVoucherModelFromDomain(v *ledger.PaymentVoucher) *PaymentVoucherModel {
	return &PaymentVoucherModel{
		ID:          v.ID,
		AccountID:   v.AccountID,
		VoucherDate: v.Date,
		Purpose:     v.Purpose,
		VoucherType: string(v.Type),
		Amount:      v.Amount,
		CreatedAt:   v.CreatedAt,
	}
}

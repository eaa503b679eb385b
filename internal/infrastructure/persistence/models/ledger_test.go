package models

import (
	"testing"
	"time"

	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAccountModel_RoundTrip(t *testing.T) {
	account, err := ledger.NewAccount("Shree Weaving Mills")
	require.NoError(t, err)

	m := LedgerAccountModelFromDomain(account)
	assert.Equal(t, "ledger_accounts", m.TableName())
	assert.Equal(t, account.ID, m.ID)

	back := m.ToDomain()
	assert.Equal(t, account.Name, back.Name)
	assert.Equal(t, account.BaseEntity, back.BaseEntity)
}

func TestProductionChallanModel_KeepsSpecVerbatim(t *testing.T) {
	spec := []byte(`[{"qualityName":"Q1","rate":2.5}]`)
	challan, err := ledger.NewProductionChallan(uuid.New(), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "CH-1", decimal.NewFromInt(10), spec)
	require.NoError(t, err)

	m := ProductionChallanModelFromDomain(challan)
	assert.Equal(t, "production_challans", m.TableName())
	assert.Equal(t, spec, m.QualitySpec)

	back := m.ToDomain()
	assert.True(t, back.CreditAmount().Equal(decimal.NewFromInt(25)))
	assert.Equal(t, challan.Reference, back.Reference)
	assert.Equal(t, challan.AccountID, back.AccountID)
}

func TestPaymentVoucherModel_RoundTrip(t *testing.T) {
	v, err := ledger.NewPaymentVoucher(uuid.New(), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "Advance", ledger.VoucherTypeDebit, decimal.RequireFromString("99.95"))
	require.NoError(t, err)
	v.ID = 17

	m := PaymentVoucherModelFromDomain(v)
	assert.Equal(t, "payment_vouchers", m.TableName())
	assert.Equal(t, "Debit", m.VoucherType)

	back := m.ToDomain()
	assert.Equal(t, int64(17), back.ID)
	assert.Equal(t, ledger.VoucherTypeDebit, back.Type)
	assert.True(t, back.Amount.Equal(v.Amount))
}

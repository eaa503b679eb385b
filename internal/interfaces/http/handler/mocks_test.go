package handler

import (
	"context"

	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository implements ledger.AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockChallanRepository implements ledger.CreditSourceRepository for testing
type MockChallanRepository struct {
	mock.Mock
}

func (m *MockChallanRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.ProductionChallan, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.ProductionChallan), args.Error(1)
}

func (m *MockChallanRepository) Save(ctx context.Context, challan *ledger.ProductionChallan) error {
	args := m.Called(ctx, challan)
	return args.Error(0)
}

// MockVoucherRepository implements ledger.VoucherRepository for testing
type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.PaymentVoucher, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.PaymentVoucher), args.Error(1)
}

func (m *MockVoucherRepository) Save(ctx context.Context, voucher *ledger.PaymentVoucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

var (
	_ ledger.AccountRepository      = (*MockAccountRepository)(nil)
	_ ledger.CreditSourceRepository = (*MockChallanRepository)(nil)
	_ ledger.VoucherRepository      = (*MockVoucherRepository)(nil)
)

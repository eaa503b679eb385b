package passbook

import (
	"context"
	"sync"
	"time"

	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of ledger.AccountRepository
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

// MockCreditSourceRepository is a mock implementation of ledger.CreditSourceRepository
type MockCreditSourceRepository struct {
	mock.Mock
}

func (m *MockCreditSourceRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.ProductionChallan, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.ProductionChallan), args.Error(1)
}

func (m *MockCreditSourceRepository) Save(ctx context.Context, challan *ledger.ProductionChallan) error {
	args := m.Called(ctx, challan)
	return args.Error(0)
}

// MockVoucherRepository is a mock implementation of ledger.VoucherRepository
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

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// recordingRecorder captures assembly measurements
type recordingRecorder struct {
	mu          sync.Mutex
	assemblies  int
	lastEntries int
	failures    []string
}

func (r *recordingRecorder) ObserveAssembly(_ time.Duration, entries int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assemblies++
	r.lastEntries = entries
}

func (r *recordingRecorder) UpstreamFailure(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, source)
}

package passbook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type passbookFixture struct {
	accounts *MockAccountRepository
	challans *MockCreditSourceRepository
	vouchers *MockVoucherRepository
	recorder *recordingRecorder
	service  *PassbookService
	account  *ledger.Account
}

func newPassbookFixture(t *testing.T, opts Options) *passbookFixture {
	t.Helper()
	account, err := ledger.NewAccount("Shree Weavers")
	require.NoError(t, err)

	f := &passbookFixture{
		accounts: new(MockAccountRepository),
		challans: new(MockCreditSourceRepository),
		vouchers: new(MockVoucherRepository),
		recorder: &recordingRecorder{},
		account:  account,
	}
	f.service = NewPassbookService(f.accounts, f.challans, f.vouchers, opts, f.recorder, zap.NewNop())
	return f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testChallan(accountID uuid.UUID, d time.Time, ref string, qty int64, spec string) ledger.ProductionChallan {
	c, _ := ledger.NewProductionChallan(accountID, d, ref, decimal.NewFromInt(qty), []byte(spec))
	return *c
}

func testVoucher(accountID uuid.UUID, id int64, d time.Time, vt ledger.VoucherType, amount int64) ledger.PaymentVoucher {
	return ledger.PaymentVoucher{ID: id, AccountID: accountID, Date: d, Purpose: "Payment", Type: vt, Amount: decimal.NewFromInt(amount)}
}

func TestPassbookService_GetPassbook_Success(t *testing.T) {
	f := newPassbookFixture(t, DefaultOptions())
	ctx := context.Background()
	id := f.account.ID

	f.accounts.On("FindByID", ctx, id).Return(f.account, nil)
	f.challans.On("FindByAccount", mock.Anything, id).Return([]ledger.ProductionChallan{
		testChallan(id, date(2024, 1, 10), "CH-1", 100, `[{"quality":"A","rate":5}]`),
	}, nil)
	f.vouchers.On("FindByAccount", mock.Anything, id).Return([]ledger.PaymentVoucher{
		testVoucher(id, 1, date(2024, 1, 15), ledger.VoucherTypeDebit, 200),
	}, nil)

	result, err := f.service.GetPassbook(ctx, id, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, "Shree Weavers", result.AccountName)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "2024-01-15", result.Entries[0].Date)
	assert.Equal(t, "VCH-D-202401001", result.Entries[0].Remark)
	assert.True(t, result.Entries[0].Balance.Equal(decimal.NewFromInt(300)))
	assert.True(t, result.Entries[1].Balance.Equal(decimal.NewFromInt(500)))
	assert.True(t, result.Summary.Balance.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 1, f.recorder.assemblies)
	assert.Equal(t, 2, f.recorder.lastEntries)
	f.accounts.AssertExpectations(t)
	f.challans.AssertExpectations(t)
	f.vouchers.AssertExpectations(t)
}

func TestPassbookService_GetPassbook_PageSizeBounds(t *testing.T) {
	f := newPassbookFixture(t, Options{DefaultPageSize: 2, MaxPageSize: 3})
	ctx := context.Background()
	id := f.account.ID

	var vouchers []ledger.PaymentVoucher
	for i := 1; i <= 7; i++ {
		vouchers = append(vouchers, testVoucher(id, int64(i), date(2024, 3, i), ledger.VoucherTypeCredit, 10))
	}
	f.accounts.On("FindByID", ctx, id).Return(f.account, nil)
	f.challans.On("FindByAccount", mock.Anything, id).Return([]ledger.ProductionChallan{}, nil)
	f.vouchers.On("FindByAccount", mock.Anything, id).Return(vouchers, nil)

	defaulted, err := f.service.GetPassbook(ctx, id, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, defaulted.PageSize)
	assert.Len(t, defaulted.Entries, 2)
	assert.Equal(t, 4, defaulted.TotalPages)

	capped, err := f.service.GetPassbook(ctx, id, 3, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, capped.PageSize)
	assert.Equal(t, 3, capped.TotalPages)
	require.Len(t, capped.Entries, 1)
	assert.Equal(t, "VCH-C-202403001", capped.Entries[0].Remark)

	beyond, err := f.service.GetPassbook(ctx, id, 9, 3)
	require.NoError(t, err)
	assert.Empty(t, beyond.Entries)
	assert.True(t, beyond.Summary.TotalCredit.Equal(decimal.NewFromInt(70)))
}

func TestPassbookService_GetPassbook_EmptySources(t *testing.T) {
	f := newPassbookFixture(t, DefaultOptions())
	ctx := context.Background()
	id := f.account.ID

	f.accounts.On("FindByID", ctx, id).Return(f.account, nil)
	f.challans.On("FindByAccount", mock.Anything, id).Return([]ledger.ProductionChallan{}, nil)
	f.vouchers.On("FindByAccount", mock.Anything, id).Return([]ledger.PaymentVoucher{}, nil)

	result, err := f.service.GetPassbook(ctx, id, 1, 20)

	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.NotNil(t, result.Entries)
	assert.True(t, result.Summary.TotalCredit.IsZero())
	assert.True(t, result.Summary.TotalDebit.IsZero())
	assert.True(t, result.Summary.Balance.IsZero())
	assert.Equal(t, 0, result.TotalPages)
}

func TestPassbookService_GetPassbook_UpstreamFailure(t *testing.T) {
	f := newPassbookFixture(t, DefaultOptions())
	ctx := context.Background()
	id := f.account.ID
	cause := errors.New("connection refused")

	f.accounts.On("FindByID", ctx, id).Return(f.account, nil)
	f.challans.On("FindByAccount", mock.Anything, id).Return([]ledger.ProductionChallan{}, nil).Maybe()
	f.vouchers.On("FindByAccount", mock.Anything, id).Return(nil, cause)

	result, err := f.service.GetPassbook(ctx, id, 1, 20)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{SourceVouchers}, f.recorder.failures)
	assert.Zero(t, f.recorder.assemblies)
}

func TestPassbookService_GetPassbook_AccountNotFound(t *testing.T) {
	f := newPassbookFixture(t, DefaultOptions())
	ctx := context.Background()
	id := uuid.New()

	f.accounts.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	result, err := f.service.GetPassbook(ctx, id, 1, 20)

	assert.Nil(t, result)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", de.Code)
	f.challans.AssertNotCalled(t, "FindByAccount", mock.Anything, mock.Anything)
	f.vouchers.AssertNotCalled(t, "FindByAccount", mock.Anything, mock.Anything)
}

func TestPassbookService_FetchTimeout(t *testing.T) {
	f := newPassbookFixture(t, Options{FetchTimeout: 20 * time.Millisecond})
	ctx := context.Background()
	id := f.account.ID

	f.accounts.On("FindByID", ctx, id).Return(f.account, nil)
	f.challans.On("FindByAccount", mock.Anything, id).Return([]ledger.ProductionChallan{}, nil).Maybe()
	f.vouchers.On("FindByAccount", mock.Anything, id).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	_, err := f.service.GetSummary(ctx, id)

	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPassbookService_GetSummary(t *testing.T) {
	f := newPassbookFixture(t, DefaultOptions())
	ctx := context.Background()
	id := f.account.ID

	f.accounts.On("FindByID", ctx, id).Return(f.account, nil)
	f.challans.On("FindByAccount", mock.Anything, id).Return([]ledger.ProductionChallan{
		testChallan(id, date(2024, 1, 10), "CH-1", 100, `[{"rate":5}]`),
		testChallan(id, date(2024, 1, 11), "CH-2", 100, `null`),
	}, nil)
	f.vouchers.On("FindByAccount", mock.Anything, id).Return([]ledger.PaymentVoucher{
		testVoucher(id, 1, date(2024, 1, 12), ledger.VoucherTypeCredit, 50),
		testVoucher(id, 2, date(2024, 1, 13), ledger.VoucherTypeDebit, 120),
	}, nil)

	summary, err := f.service.GetSummary(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, id, summary.AccountID)
	assert.True(t, summary.TotalCredit.Equal(decimal.NewFromInt(550)))
	assert.True(t, summary.TotalDebit.Equal(decimal.NewFromInt(120)))
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(430)))
}

func TestPassbookService_ListVouchers(t *testing.T) {
	f := newPassbookFixture(t, Options{TieBreak: ledger.TieBreakVoucherID})
	ctx := context.Background()
	id := f.account.ID

	f.accounts.On("FindByID", ctx, id).Return(f.account, nil)
	f.vouchers.On("FindByAccount", mock.Anything, id).Return([]ledger.PaymentVoucher{
		testVoucher(id, 9, date(2024, 2, 1), ledger.VoucherTypeCredit, 10),
		testVoucher(id, 4, date(2024, 2, 1), ledger.VoucherTypeCredit, 20),
		testVoucher(id, 5, date(2024, 1, 31), ledger.VoucherTypeDebit, 30),
	}, nil)

	result, err := f.service.ListVouchers(ctx, id)

	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "VCH-D-202401001", result[0].Code)
	assert.Equal(t, int64(4), result[1].ID)
	assert.Equal(t, "VCH-C-202402001", result[1].Code)
	assert.Equal(t, int64(9), result[2].ID)
	assert.Equal(t, "VCH-C-202402002", result[2].Code)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	appdto "github.com/erp/passbook/internal/application/passbook/dto"
	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/interfaces/http/dto"
	"github.com/erp/passbook/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPassbookHandler_RecordVoucher(t *testing.T) {
	const body = `{"date":"2024-03-02","purpose":"Advance against grey cloth","type":"Credit","amount":"1500.50"}`

	t.Run("records and returns the voucher code", func(t *testing.T) {
		env := setupPassbookTestRouter(t)
		id := env.account.ID

		env.accounts.On("FindByID", mock.Anything, id).Return(env.account, nil)
		env.vouchers.On("Save", mock.Anything, mock.AnythingOfType("*ledger.PaymentVoucher")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*ledger.PaymentVoucher).ID = 7
			}).
			Return(nil)
		env.vouchers.On("FindByAccount", mock.Anything, id).Return([]ledger.PaymentVoucher{
			{ID: 7, AccountID: id, Date: day(2024, 3, 2), Type: ledger.VoucherTypeCredit, Amount: decimal.RequireFromString("1500.50")},
		}, nil)

		w := env.do(http.MethodPost, env.path("/vouchers"), body, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool                   `json:"success"`
			Data    appdto.VoucherResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, int64(7), resp.Data.ID)
		assert.Equal(t, "VCH-C-202403001", resp.Data.Code)
		assert.Equal(t, "Credit", resp.Data.Type)
		assert.True(t, resp.Data.Amount.Equal(decimal.RequireFromString("1500.5")))
		env.vouchers.AssertExpectations(t)
	})

	t.Run("retry with the same idempotency key conflicts", func(t *testing.T) {
		env := setupPassbookTestRouter(t)
		id := env.account.ID

		env.accounts.On("FindByID", mock.Anything, id).Return(env.account, nil)
		env.vouchers.On("Save", mock.Anything, mock.AnythingOfType("*ledger.PaymentVoucher")).Return(nil).Once()
		env.vouchers.On("FindByAccount", mock.Anything, id).Return([]ledger.PaymentVoucher{}, nil)

		headers := map[string]string{middleware.IdempotencyKeyHeader: "pay-2024-03-02"}
		first := env.do(http.MethodPost, env.path("/vouchers"), body, headers)
		require.Equal(t, http.StatusCreated, first.Code)

		second := env.do(http.MethodPost, env.path("/vouchers"), body, headers)
		require.Equal(t, http.StatusConflict, second.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, decodeError(t, second).Code)
		env.vouchers.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("unknown voucher type fails binding", func(t *testing.T) {
		env := setupPassbookTestRouter(t)

		w := env.do(http.MethodPost, env.path("/vouchers"), `{"date":"2024-03-02","type":"Transfer","amount":"10"}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeError(t, w).Code)
		env.vouchers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("negative amount is a validation error", func(t *testing.T) {
		env := setupPassbookTestRouter(t)
		env.accounts.On("FindByID", mock.Anything, env.account.ID).Return(env.account, nil)

		w := env.do(http.MethodPost, env.path("/vouchers"), `{"date":"2024-03-02","type":"Debit","amount":"-5"}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeError(t, w).Code)
	})

	t.Run("malformed date is a validation error", func(t *testing.T) {
		env := setupPassbookTestRouter(t)
		env.accounts.On("FindByID", mock.Anything, env.account.ID).Return(env.account, nil)

		w := env.do(http.MethodPost, env.path("/vouchers"), `{"date":"02/03/2024","type":"Debit","amount":"5"}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeError(t, w).Code)
	})

	t.Run("store failure is 500", func(t *testing.T) {
		env := setupPassbookTestRouter(t)
		env.accounts.On("FindByID", mock.Anything, env.account.ID).Return(env.account, nil)
		env.vouchers.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		w := env.do(http.MethodPost, env.path("/vouchers"), body, nil)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrCodeInternal, decodeError(t, w).Code)
	})
}

func TestPassbookHandler_RecordChallan(t *testing.T) {
	t.Run("credit resolves from the first quality rate", func(t *testing.T) {
		env := setupPassbookTestRouter(t)
		env.accounts.On("FindByID", mock.Anything, env.account.ID).Return(env.account, nil)
		env.challans.On("Save", mock.Anything, mock.AnythingOfType("*ledger.ProductionChallan")).Return(nil)

		w := env.do(http.MethodPost, env.path("/challans"),
			`{"date":"2024-01-10","reference":"CH-1","quantity":"100","quality_spec":[{"qualityName":"Plain","rate":5},{"qualityName":"Twill","rate":9}]}`, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Data appdto.ChallanResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "CH-1", resp.Data.Reference)
		assert.True(t, resp.Data.Rate.Equal(decimal.NewFromInt(5)))
		assert.True(t, resp.Data.CreditAmount.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, "list", resp.Data.SpecShape)
	})

	t.Run("null quality spec credits zero", func(t *testing.T) {
		env := setupPassbookTestRouter(t)
		env.accounts.On("FindByID", mock.Anything, env.account.ID).Return(env.account, nil)
		env.challans.On("Save", mock.Anything, mock.Anything).Return(nil)

		w := env.do(http.MethodPost, env.path("/challans"),
			`{"date":"2024-01-10","reference":"CH-2","quantity":"40","quality_spec":null}`, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Data appdto.ChallanResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Data.CreditAmount.IsZero())
	})

	t.Run("reference is required", func(t *testing.T) {
		env := setupPassbookTestRouter(t)

		w := env.do(http.MethodPost, env.path("/challans"), `{"date":"2024-01-10","quantity":"1"}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		errInfo := decodeError(t, w)
		require.Len(t, errInfo.Details, 1)
		assert.Equal(t, "reference", errInfo.Details[0].Field)
	})
}

func TestPassbookHandler_SummaryAndVouchers(t *testing.T) {
	env := setupPassbookTestRouter(t)
	id := env.account.ID

	env.accounts.On("FindByID", mock.Anything, id).Return(env.account, nil)
	env.challans.On("FindByAccount", mock.Anything, id).Return([]ledger.ProductionChallan{}, nil)
	env.vouchers.On("FindByAccount", mock.Anything, id).Return([]ledger.PaymentVoucher{
		{ID: 2, AccountID: id, Date: day(2024, 2, 20), Type: ledger.VoucherTypeCredit, Amount: decimal.NewFromInt(50)},
		{ID: 1, AccountID: id, Date: day(2024, 2, 1), Type: ledger.VoucherTypeCredit, Amount: decimal.NewFromInt(70)},
	}, nil)

	t.Run("summary", func(t *testing.T) {
		w := env.do(http.MethodGet, env.path("/summary"), "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data appdto.SummaryResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, id, resp.Data.AccountID)
		assert.True(t, resp.Data.TotalCredit.Equal(decimal.NewFromInt(120)))
		assert.True(t, resp.Data.Balance.Equal(decimal.NewFromInt(120)))
	})

	t.Run("vouchers carry codes in date order", func(t *testing.T) {
		w := env.do(http.MethodGet, env.path("/vouchers"), "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []appdto.VoucherResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		codes := map[int64]string{}
		for _, v := range resp.Data {
			codes[v.ID] = v.Code
		}
		assert.Equal(t, "VCH-C-202402001", codes[1])
		assert.Equal(t, "VCH-C-202402002", codes[2])
	})
}

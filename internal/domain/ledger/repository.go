package ledger

import (
	"context"

	"github.com/erp/passbook/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountRepository stores ledger accounts
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Account, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, account *Account) error
}

// CreditSourceRepository yields the production challans that credit an account
type CreditSourceRepository interface {
	// FindByAccount returns every challan of the account, oldest first
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]ProductionChallan, error)
	Save(ctx context.Context, challan *ProductionChallan) error
}

// VoucherRepository stores payment vouchers
type VoucherRepository interface {
	// FindByAccount returns every voucher of the account, oldest first
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]PaymentVoucher, error)
	// Save inserts the voucher and sets its ID
	Save(ctx context.Context, voucher *PaymentVoucher) error
}

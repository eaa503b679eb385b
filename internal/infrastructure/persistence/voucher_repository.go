package persistence

import (
	"context"
	"fmt"

	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVoucherRepository implements ledger.VoucherRepository using GORM
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// FindByAccount returns every voucher of the account ordered by date then id
func (r *GormVoucherRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.PaymentVoucher, error) {
	var rows []models.PaymentVoucherModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("voucher_date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch payment vouchers: %w", err)
	}

	vouchers := make([]ledger.PaymentVoucher, len(rows))
	for i := range rows {
		vouchers[i] = *rows[i].ToDomain()
	}
	return vouchers, nil
}

// Save inserts the voucher and copies the generated serial back onto it
func (r *GormVoucherRepository) Save(ctx context.Context, voucher *ledger.PaymentVoucher) error {
	model := models.PaymentVoucherModelFromDomain(voucher)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("save payment voucher: %w", err)
	}
	voucher.ID = model.ID
	return nil
}

var _ ledger.VoucherRepository = (*GormVoucherRepository)(nil)

package persistence

import (
	"context"
	"fmt"

	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChallanRepository implements ledger.CreditSourceRepository using GORM
type GormChallanRepository struct {
	db *gorm.DB
}

// NewGormChallanRepository creates a new GormChallanRepository
func NewGormChallanRepository(db *gorm.DB) *GormChallanRepository {
	return &GormChallanRepository{db: db}
}

// FindByAccount returns every challan of the account ordered by date then insertion time
func (r *GormChallanRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.ProductionChallan, error) {
	var rows []models.ProductionChallanModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("challan_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch production challans: %w", err)
	}

	challans := make([]ledger.ProductionChallan, len(rows))
	for i := range rows {
		challans[i] = *rows[i].ToDomain()
	}
	return challans, nil
}

// Save inserts a challan
func (r *GormChallanRepository) Save(ctx context.Context, challan *ledger.ProductionChallan) error {
	if err := r.db.WithContext(ctx).Create(models.ProductionChallanModelFromDomain(challan)).Error; err != nil {
		return fmt.Errorf("save production challan: %w", err)
	}
	return nil
}

var _ ledger.CreditSourceRepository = (*GormChallanRepository)(nil)

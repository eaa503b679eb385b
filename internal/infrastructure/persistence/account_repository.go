package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/domain/shared"
	"github.com/erp/passbook/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var model models.LedgerAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find ledger account: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of accounts matching the filter's search term
func (r *GormAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Account, error) {
	var rows []models.LedgerAccountModel

	sortField := ValidateSortField(filter.OrderBy, AccountSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	query := r.applySearch(r.db.WithContext(ctx).Model(&models.LedgerAccountModel{}), filter).
		Order(sortField + " " + sortOrder)
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}

	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list ledger accounts: %w", err)
	}

	accounts := make([]ledger.Account, len(rows))
	for i := range rows {
		accounts[i] = *rows[i].ToDomain()
	}
	return accounts, nil
}

// Count counts accounts matching the filter's search term
func (r *GormAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.LedgerAccountModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count ledger accounts: %w", err)
	}
	return count, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	if err := r.db.WithContext(ctx).Save(models.LedgerAccountModelFromDomain(account)).Error; err != nil {
		return fmt.Errorf("save ledger account: %w", err)
	}
	return nil
}

func (r *GormAccountRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	search := strings.TrimSpace(filter.Search)
	if search == "" {
		return query
	}
	return query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
}

var _ ledger.AccountRepository = (*GormAccountRepository)(nil)

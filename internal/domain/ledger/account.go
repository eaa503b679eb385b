package ledger

import (
	"strings"

	"github.com/erp/passbook/internal/domain/shared"
)

// Account is a business partner whose passbook is assembled from challans and vouchers
type Account struct {
	shared.BaseEntity
	Name string
}

// NewAccount registers a new ledger account
func NewAccount(name string) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot exceed 200 characters")
	}
	return &Account{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

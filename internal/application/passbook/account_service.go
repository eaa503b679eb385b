package passbook

import (
	"context"

	"github.com/erp/passbook/internal/application/passbook/dto"
	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService manages ledger accounts
type AccountService struct {
	accountRepo ledger.AccountRepository
	logger      *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo ledger.AccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// CreateAccount registers a ledger account
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	account, err := ledger.NewAccount(req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to save account", zap.String("name", account.Name), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.logger.Info("Ledger account created",
		zap.String("account_id", account.ID.String()),
		zap.String("name", account.Name))

	resp := dto.ToAccountResponse(account)
	return &resp, nil
}

// GetAccount returns one account
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*dto.AccountResponse, error) {
	account, err := findAccount(ctx, s.accountRepo, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToAccountResponse(account)
	return &resp, nil
}

// ListAccounts returns a page of accounts and the total count
func (s *AccountService) ListAccounts(ctx context.Context, filter shared.Filter) ([]dto.AccountResponse, int64, error) {
	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list accounts", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list accounts")
	}
	total, err := s.accountRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count accounts", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list accounts")
	}

	result := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		result[i] = dto.ToAccountResponse(&accounts[i])
	}
	return result, total, nil
}

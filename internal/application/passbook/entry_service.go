package passbook

import (
	"context"
	"strconv"

	"github.com/erp/passbook/internal/application/passbook/dto"
	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntryService records the writes that feed a passbook: payment vouchers
// and production challans. Every successful write publishes a
// LedgerInvalidated event for the account.
type EntryService struct {
	accountRepo ledger.AccountRepository
	challanRepo ledger.CreditSourceRepository
	voucherRepo ledger.VoucherRepository
	passbooks   *PassbookService
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewEntryService creates a new entry service
func NewEntryService(
	accountRepo ledger.AccountRepository,
	challanRepo ledger.CreditSourceRepository,
	voucherRepo ledger.VoucherRepository,
	passbooks *PassbookService,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *EntryService {
	return &EntryService{
		accountRepo: accountRepo,
		challanRepo: challanRepo,
		voucherRepo: voucherRepo,
		passbooks:   passbooks,
		idempotency: idempotency,
		idemConfig:  idemConfig,
		publisher:   publisher,
		logger:      logger,
	}
}

// RecordVoucher stores a payment voucher and returns it with its reference code.
// A non-empty idempotencyKey makes retries of the same request fail with
// DUPLICATE_REQUEST instead of recording the voucher twice.
func (s *EntryService) RecordVoucher(ctx context.Context, accountID uuid.UUID, idempotencyKey string, req dto.RecordVoucherRequest) (*dto.VoucherResponse, error) {
	if _, err := findAccount(ctx, s.accountRepo, accountID); err != nil {
		return nil, err
	}

	voucherType, err := ledger.ParseVoucherType(req.Type)
	if err != nil {
		return nil, err
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	voucher, err := ledger.NewPaymentVoucher(accountID, date, req.Purpose, voucherType, req.Amount)
	if err != nil {
		return nil, err
	}

	claimed, err := s.claimKey(ctx, accountID, idempotencyKey)
	if err != nil {
		return nil, err
	}

	if err := s.voucherRepo.Save(ctx, voucher); err != nil {
		s.logger.Error("Failed to save voucher",
			zap.String("account_id", accountID.String()),
			zap.String("idempotency_key", idempotencyKey),
			zap.Error(err))
		// nothing was stored, so a retry with the same key must be accepted
		s.releaseKey(ctx, claimed)
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record voucher")
	}

	s.publish(ctx, ledger.NewLedgerInvalidatedEvent(accountID, ledger.SourceVoucher, strconv.FormatInt(voucher.ID, 10)))

	s.logger.Info("Voucher recorded",
		zap.String("account_id", accountID.String()),
		zap.Int64("voucher_id", voucher.ID),
		zap.String("type", voucher.Type.String()),
		zap.String("amount", voucher.Amount.String()))

	code, err := s.passbooks.VoucherCode(ctx, accountID, voucher.ID)
	if err != nil {
		// the voucher is stored; its code shows up on the next read
		s.logger.Warn("Failed to resolve voucher code",
			zap.Int64("voucher_id", voucher.ID),
			zap.Error(err))
	}

	resp := dto.ToVoucherResponse(ledger.SequencedVoucher{PaymentVoucher: *voucher, Code: code})
	return &resp, nil
}

// RecordChallan stores a production challan
func (s *EntryService) RecordChallan(ctx context.Context, accountID uuid.UUID, req dto.RecordChallanRequest) (*dto.ChallanResponse, error) {
	if _, err := findAccount(ctx, s.accountRepo, accountID); err != nil {
		return nil, err
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	challan, err := ledger.NewProductionChallan(accountID, date, req.Reference, req.Quantity, req.QualitySpec)
	if err != nil {
		return nil, err
	}

	if err := s.challanRepo.Save(ctx, challan); err != nil {
		s.logger.Error("Failed to save challan",
			zap.String("account_id", accountID.String()),
			zap.String("reference", challan.Reference),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record challan")
	}

	s.publish(ctx, ledger.NewLedgerInvalidatedEvent(accountID, ledger.SourceProduction, challan.Reference))

	resp := dto.ToChallanResponse(challan)
	if ledger.ParseQualitySpec(challan.QualitySpec).Shape != ledger.SpecList {
		s.logger.Warn("Challan quality spec has no rate list, credit resolves to zero",
			zap.String("challan_id", challan.ID.String()),
			zap.String("shape", resp.SpecShape))
	}
	return &resp, nil
}

// claimKey marks the request key as used and returns the store key it
// claimed, or "" when nothing was claimed.
func (s *EntryService) claimKey(ctx context.Context, accountID uuid.UUID, key string) (string, error) {
	if key == "" || s.idempotency == nil || !s.idemConfig.Enabled {
		return "", nil
	}

	storeKey := "voucher:" + accountID.String() + ":" + key
	fresh, err := s.idempotency.MarkProcessed(ctx, storeKey, s.idemConfig.TTL)
	if err != nil {
		// the store being down should not block bookkeeping
		s.logger.Warn("Idempotency store unavailable, recording without dedup",
			zap.String("idempotency_key", key),
			zap.Error(err))
		return "", nil
	}
	if !fresh {
		return "", shared.NewDomainError("DUPLICATE_REQUEST", "A voucher was already recorded for this Idempotency-Key")
	}
	return storeKey, nil
}

func (s *EntryService) releaseKey(ctx context.Context, storeKey string) {
	if storeKey == "" {
		return
	}
	if err := s.idempotency.Release(context.WithoutCancel(ctx), storeKey); err != nil {
		s.logger.Error("Failed to release idempotency key",
			zap.String("key", storeKey),
			zap.Error(err))
	}
}

func (s *EntryService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish ledger event",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err))
	}
}

package passbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/passbook/internal/application/passbook/dto"
	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Upstream source names used in logs and metrics
const (
	SourceCreditEvents = "credit_sources"
	SourceVouchers     = "vouchers"
)

// Recorder receives passbook assembly measurements
type Recorder interface {
	ObserveAssembly(duration time.Duration, entries int)
	UpstreamFailure(source string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAssembly(time.Duration, int) {}
func (nopRecorder) UpstreamFailure(string)             {}

// Options tunes passbook reads
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	// FetchTimeout bounds the two upstream reads; zero means no bound
	FetchTimeout time.Duration
	TieBreak     ledger.TieBreak
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		DefaultPageSize: ledger.DefaultPageSize,
		MaxPageSize:     100,
		FetchTimeout:    10 * time.Second,
		TieBreak:        ledger.TieBreakFetchOrder,
	}
}

// PassbookService assembles account passbooks from the injected sources
type PassbookService struct {
	accountRepo ledger.AccountRepository
	challanRepo ledger.CreditSourceRepository
	voucherRepo ledger.VoucherRepository
	sequencer   *ledger.Sequencer
	opts        Options
	recorder    Recorder
	logger      *zap.Logger
}

// NewPassbookService creates a new passbook service. recorder may be nil.
func NewPassbookService(
	accountRepo ledger.AccountRepository,
	challanRepo ledger.CreditSourceRepository,
	voucherRepo ledger.VoucherRepository,
	opts Options,
	recorder Recorder,
	logger *zap.Logger,
) *PassbookService {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = ledger.DefaultPageSize
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &PassbookService{
		accountRepo: accountRepo,
		challanRepo: challanRepo,
		voucherRepo: voucherRepo,
		sequencer:   ledger.NewSequencer(opts.TieBreak),
		opts:        opts,
		recorder:    recorder,
		logger:      logger,
	}
}

// GetPassbook returns one page of the account's passbook together with the
// summary over all of its entries
func (s *PassbookService) GetPassbook(ctx context.Context, accountID uuid.UUID, page, pageSize int) (*dto.PassbookResponse, error) {
	account, err := findAccount(ctx, s.accountRepo, accountID)
	if err != nil {
		return nil, err
	}

	pb, err := s.build(ctx, accountID)
	if err != nil {
		return nil, err
	}

	paged := ledger.Paginate(pb.Entries, page, s.pageSize(pageSize))
	return dto.ToPassbookResponse(account, paged, pb.Summary), nil
}

// GetSummary returns the account's totals
func (s *PassbookService) GetSummary(ctx context.Context, accountID uuid.UUID) (*dto.SummaryResponse, error) {
	if _, err := findAccount(ctx, s.accountRepo, accountID); err != nil {
		return nil, err
	}

	pb, err := s.build(ctx, accountID)
	if err != nil {
		return nil, err
	}

	summary := dto.ToSummaryResponse(accountID, pb.Summary)
	return &summary, nil
}

// ListVouchers returns the account's vouchers with their reference codes,
// in sequencing order
func (s *PassbookService) ListVouchers(ctx context.Context, accountID uuid.UUID) ([]dto.VoucherResponse, error) {
	if _, err := findAccount(ctx, s.accountRepo, accountID); err != nil {
		return nil, err
	}

	ctx, cancel := s.fetchContext(ctx)
	defer cancel()

	vouchers, err := s.voucherRepo.FindByAccount(ctx, accountID)
	if err != nil {
		s.recorder.UpstreamFailure(SourceVouchers)
		s.logger.Error("Failed to fetch vouchers",
			zap.String("account_id", accountID.String()),
			zap.Error(err))
		return nil, upstreamError(err)
	}

	sequenced := s.sequencer.Sequence(vouchers)
	result := make([]dto.VoucherResponse, len(sequenced))
	for i, v := range sequenced {
		result[i] = dto.ToVoucherResponse(v)
	}
	return result, nil
}

// VoucherCode returns the code currently assigned to the voucher with the given ID
func (s *PassbookService) VoucherCode(ctx context.Context, accountID uuid.UUID, voucherID int64) (string, error) {
	vouchers, err := s.ListVouchers(ctx, accountID)
	if err != nil {
		return "", err
	}
	for _, v := range vouchers {
		if v.ID == voucherID {
			return v.Code, nil
		}
	}
	return "", shared.ErrNotFound
}

func (s *PassbookService) build(ctx context.Context, accountID uuid.UUID) (ledger.Passbook, error) {
	challans, vouchers, err := s.fetch(ctx, accountID)
	if err != nil {
		return ledger.Passbook{}, err
	}

	start := time.Now()
	pb := ledger.BuildPassbook(challans, vouchers, s.sequencer)
	s.recorder.ObserveAssembly(time.Since(start), len(pb.Entries))

	s.logger.Debug("Passbook assembled",
		zap.String("account_id", accountID.String()),
		zap.Int("challans", len(challans)),
		zap.Int("vouchers", len(vouchers)),
		zap.String("balance", pb.Summary.Balance.String()))

	return pb, nil
}

// fetch reads both upstream sources concurrently. Either both succeed or
// the whole read fails.
func (s *PassbookService) fetch(ctx context.Context, accountID uuid.UUID) ([]ledger.ProductionChallan, []ledger.PaymentVoucher, error) {
	ctx, cancel := s.fetchContext(ctx)
	defer cancel()

	var (
		challans []ledger.ProductionChallan
		vouchers []ledger.PaymentVoucher
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.challanRepo.FindByAccount(gctx, accountID)
		if err != nil {
			s.noteFailure(SourceCreditEvents, err)
			return fmt.Errorf("fetch %s: %w", SourceCreditEvents, err)
		}
		challans = result
		return nil
	})
	g.Go(func() error {
		result, err := s.voucherRepo.FindByAccount(gctx, accountID)
		if err != nil {
			s.noteFailure(SourceVouchers, err)
			return fmt.Errorf("fetch %s: %w", SourceVouchers, err)
		}
		vouchers = result
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to fetch ledger sources",
			zap.String("account_id", accountID.String()),
			zap.Error(err))
		return nil, nil, upstreamError(err)
	}
	return challans, vouchers, nil
}

func (s *PassbookService) noteFailure(source string, err error) {
	// the sibling fetch is cancelled once one side fails; only count the cause
	if errors.Is(err, context.Canceled) {
		return
	}
	s.recorder.UpstreamFailure(source)
}

func (s *PassbookService) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.FetchTimeout > 0 {
		return context.WithTimeout(ctx, s.opts.FetchTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *PassbookService) pageSize(requested int) int {
	switch {
	case requested <= 0:
		return s.opts.DefaultPageSize
	case requested > s.opts.MaxPageSize:
		return s.opts.MaxPageSize
	default:
		return requested
	}
}

func upstreamError(err error) error {
	return shared.WrapDomainError(shared.ErrUpstreamUnavailable.Code, shared.ErrUpstreamUnavailable.Message, err)
}

func findAccount(ctx context.Context, repo ledger.AccountRepository, id uuid.UUID) (*ledger.Account, error) {
	account, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Ledger account not found")
		}
		return nil, upstreamError(err)
	}
	return account, nil
}

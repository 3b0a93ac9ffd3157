package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/financeflow/backend/internal/apperrors"
	"github.com/financeflow/backend/internal/core/domain"
	portsrepo "github.com/financeflow/backend/internal/core/ports/repositories"
	portssvc "github.com/financeflow/backend/internal/core/ports/services"
	"github.com/financeflow/backend/internal/dto"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoSourceData signals that the previous month holds no fixed expenses.
	ErrNoSourceData = errors.New("no fixed expenses in the previous month to replicate")
	// ErrAllAlreadyExist signals that every source description is already
	// present in the target month. Wraps apperrors.ErrConflict so handlers can
	// map it by state-conflict class.
	ErrAllAlreadyExist = fmt.Errorf("%w: all fixed expenses already exist in the target month", apperrors.ErrConflict)
)

// replicatorService copies the recurring fixed expenses of one month into the
// next, skipping descriptions already present so repeated runs are safe.
type replicatorService struct {
	BaseService
	txnRepo portsrepo.TransactionRepository
}

// NewReplicatorService creates a new ReplicatorService.
func NewReplicatorService(txnRepo portsrepo.TransactionRepository) portssvc.ReplicatorSvcFacade {
	return &replicatorService{txnRepo: txnRepo}
}

var _ portssvc.ReplicatorSvcFacade = (*replicatorService)(nil)

// previousMonth computes the month before (year, month), rolling the year
// back across January.
func previousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// Replicate copies the previous month's FIXED_EXPENSE rows into the target
// month, dated the 1st. Inserts are best-effort: a failed row is reported in
// the result without rolling back earlier successes.
func (s *replicatorService) Replicate(ctx context.Context, year, month int, fallbackRate decimal.Decimal) (*dto.ReplicationResult, error) {
	prevYear, prevMonth := previousMonth(year, month)

	source, err := s.txnRepo.ListFixedExpensesByMonth(ctx, prevYear, prevMonth)
	if err != nil {
		s.LogError(ctx, err, "Failed to load source month fixed expenses", slog.Int("year", prevYear), slog.Int("month", prevMonth))
		return nil, fmt.Errorf("failed to load source month: %w", err)
	}
	if len(source) == 0 {
		return nil, ErrNoSourceData
	}

	existingRows, err := s.txnRepo.ListFixedExpensesByMonth(ctx, year, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to load target month fixed expenses", slog.Int("year", year), slog.Int("month", month))
		return nil, fmt.Errorf("failed to load target month: %w", err)
	}
	existing := make(map[string]bool, len(existingRows))
	for _, txn := range existingRows {
		existing[txn.Description] = true
	}

	toCreate := make([]domain.Transaction, 0, len(source))
	for _, txn := range source {
		if !existing[txn.Description] {
			toCreate = append(toCreate, txn)
		}
	}
	if len(toCreate) == 0 {
		return nil, ErrAllAlreadyExist
	}

	targetDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	result := &dto.ReplicationResult{Items: make([]dto.ReplicationItem, 0, len(toCreate))}

	for _, src := range toCreate {
		copyTxn := &domain.Transaction{
			Type:         domain.TypeFixedExpense,
			Amount:       src.Amount,
			Currency:     src.Currency,
			ExchangeRate: replicationRate(src, fallbackRate),
			Category:     src.Category,
			Description:  src.Description,
			Date:         targetDate,
		}

		item := dto.ReplicationItem{Description: src.Description, OK: true}
		if err := s.txnRepo.SaveTransaction(ctx, copyTxn); err != nil {
			s.LogError(ctx, err, "Failed to replicate fixed expense", slog.String("description", src.Description))
			item.OK = false
			item.Error = err.Error()
			result.Failed++
		} else {
			result.Created++
		}
		result.Items = append(result.Items, item)
	}

	s.LogInfo(ctx, "Fixed expenses replicated",
		slog.Int("year", year),
		slog.Int("month", month),
		slog.Int("created", result.Created),
		slog.Int("failed", result.Failed),
	)
	return result, nil
}

// replicationRate resolves the rate recorded on a replicated copy: reference-
// currency rows need no conversion (rate 1), otherwise the caller's fallback
// wins, then the source row's own captured rate, then zero (unknown).
func replicationRate(src domain.Transaction, fallbackRate decimal.Decimal) decimal.Decimal {
	if src.Currency == domain.ReferenceCurrency {
		return decimal.NewFromInt(1)
	}
	if fallbackRate.IsPositive() {
		return fallbackRate
	}
	if src.ExchangeRate.IsPositive() {
		return src.ExchangeRate
	}
	return decimal.Zero
}

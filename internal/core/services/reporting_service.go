package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/financeflow/backend/internal/core/domain"
	portsrepo "github.com/financeflow/backend/internal/core/ports/repositories"
	portssvc "github.com/financeflow/backend/internal/core/ports/services"
	"github.com/financeflow/backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService computes the dashboard aggregates: per-type and
// per-category totals, raw (mixed currency, as entered) and normalized to the
// reference currency.
type reportingService struct {
	BaseService
	txnRepo  portsrepo.TransactionRepository
	planRepo portsrepo.InstallmentRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(txnRepo portsrepo.TransactionRepository, planRepo portsrepo.InstallmentRepository) portssvc.ReportingSvcFacade {
	return &reportingService{txnRepo: txnRepo, planRepo: planRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// yearly reports whether the month filter selects the full-year view.
func yearly(month string) bool {
	return month == "" || month == "all"
}

// SummaryByType returns raw per-type totals plus the INSTALLMENTS projection:
// the monthly commitment of ACTIVE plans (times 12 on the yearly view). The
// projection is an estimate of upcoming spending, distinct from the actual
// INSTALLMENT payments summed by the normalized view.
func (s *reportingService) SummaryByType(ctx context.Context, year int, month string) (domain.TypeSummary, error) {
	sums, err := s.txnRepo.SumByType(ctx, year, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum transactions by type", slog.Int("year", year))
		return nil, fmt.Errorf("failed to sum transactions by type: %w", err)
	}

	summary := make(domain.TypeSummary, len(sums)+1)
	for txnType, total := range sums {
		summary[string(txnType)] = total
	}

	plans, err := s.planRepo.ListInstallments(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active plans for projection")
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}
	projection := decimal.Zero
	for _, plan := range plans {
		projection = projection.Add(plan.AmountPerInstallment)
	}
	if yearly(month) {
		projection = projection.Mul(decimal.NewFromInt(12))
	}
	summary[domain.InstallmentsProjectionKey] = projection

	return summary, nil
}

// SummaryByTypeReference returns per-type totals normalized to the reference
// currency. Rows with an unknown rate contribute nothing: the total is simply
// reduced, never an error.
func (s *reportingService) SummaryByTypeReference(ctx context.Context, year int, month string) (domain.TypeSummary, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, year, month, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for normalized summary", slog.Int("year", year))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	summary := make(domain.TypeSummary)
	for _, txn := range txns {
		converted, ok := accounting.ToReference(txn.Amount, txn.Currency, txn.ExchangeRate)
		if !ok {
			continue
		}
		key := string(txn.Type)
		summary[key] = summary[key].Add(converted)
	}
	return summary, nil
}

// ExpensesByCategory returns raw non-INCOME totals grouped by category,
// sorted descending.
func (s *reportingService) ExpensesByCategory(ctx context.Context, year int, month string) ([]domain.CategoryTotal, error) {
	totals, err := s.txnRepo.SumByCategory(ctx, year, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum expenses by category", slog.Int("year", year))
		return nil, fmt.Errorf("failed to sum expenses by category: %w", err)
	}
	return totals, nil
}

// ExpensesByCategoryReference returns normalized non-INCOME totals grouped by
// category, sorted descending. Unconvertible rows are excluded.
func (s *reportingService) ExpensesByCategoryReference(ctx context.Context, year int, month string) ([]domain.CategoryTotal, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, year, month, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for normalized categories", slog.Int("year", year))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, txn := range txns {
		if txn.Type == domain.TypeIncome {
			continue
		}
		converted, ok := accounting.ToReference(txn.Amount, txn.Currency, txn.ExchangeRate)
		if !ok {
			continue
		}
		byCategory[txn.Category] = byCategory[txn.Category].Add(converted)
	}

	totals := make([]domain.CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		totals = append(totals, domain.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals, nil
}

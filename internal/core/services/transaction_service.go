package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/financeflow/backend/internal/apperrors"
	"github.com/financeflow/backend/internal/core/domain"
	portsrepo "github.com/financeflow/backend/internal/core/ports/repositories"
	portssvc "github.com/financeflow/backend/internal/core/ports/services"
	"github.com/financeflow/backend/internal/dto"
	"github.com/shopspring/decimal"
)

// transactionService provides the plain ledger operations: create, list,
// delete, and the fixed-expense month view with its partial edit.
type transactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepository
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepository) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates and persists a new ledger entry.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txnType := domain.TransactionType(req.Type)
	if !txnType.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	currency := domain.Currency(req.Currency)
	if currency == "" {
		currency = domain.CurrencyARS
	}
	category := req.Category
	if category == "" {
		category = domain.DefaultCategory
	}

	txn := &domain.Transaction{
		Type:         txnType,
		Amount:       req.Amount,
		Currency:     currency,
		ExchangeRate: req.ExchangeRate,
		Category:     category,
		Description:  req.Description,
		Date:         date,
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction")
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created", slog.Int64("transaction_id", txn.ID), slog.String("type", string(txn.Type)))
	return txn, nil
}

// ListTransactions returns ledger entries for a year, optionally filtered by
// month ("all" or empty means full year) and category.
func (s *transactionService) ListTransactions(ctx context.Context, year int, month, category string) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, year, month, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.Int("year", year))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// DeleteTransaction removes a ledger entry by id. Payment journal rows
// referencing the transaction are not touched; the journal keeps its history.
func (s *transactionService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.txnRepo.DeleteTransaction(ctx, id); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.Int64("transaction_id", id))
		}
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", id))
	return nil
}

// ListFixedExpenses returns the FIXED_EXPENSE entries of a given month.
func (s *transactionService) ListFixedExpenses(ctx context.Context, year, month int) ([]domain.Transaction, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be 1..12", apperrors.ErrValidation)
	}
	txns, err := s.txnRepo.ListFixedExpensesByMonth(ctx, year, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fixed expenses", slog.Int("year", year), slog.Int("month", month))
		return nil, fmt.Errorf("failed to list fixed expenses: %w", err)
	}
	return txns, nil
}

// UpdateFixedExpense applies a partial edit to a fixed expense, the only
// permitted mutation of an existing ledger entry.
func (s *transactionService) UpdateFixedExpense(ctx context.Context, id int64, req dto.UpdateFixedExpenseRequest) error {
	patch := domain.FixedExpensePatch{
		Description:  req.Description,
		Amount:       req.Amount,
		Category:     req.Category,
		ExchangeRate: req.ExchangeRate,
	}
	if req.Currency != nil {
		currency := domain.Currency(*req.Currency)
		patch.Currency = &currency
	}
	if patch.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}
	if patch.Amount != nil && patch.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	if err := s.txnRepo.UpdateFixedExpense(ctx, id, patch); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update fixed expense", slog.Int64("transaction_id", id))
		}
		return err
	}
	s.LogInfo(ctx, "Fixed expense updated", slog.Int64("transaction_id", id))
	return nil
}

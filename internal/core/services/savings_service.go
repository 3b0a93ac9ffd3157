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
	"github.com/financeflow/backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// savingsService manages savings accounts, their movement journal, and the
// derived portfolio / available-to-save figures.
type savingsService struct {
	BaseService
	savingsRepo portsrepo.SavingsRepository
	txnRepo     portsrepo.TransactionRepository
}

// NewSavingsService creates a new SavingsService.
func NewSavingsService(savingsRepo portsrepo.SavingsRepository, txnRepo portsrepo.TransactionRepository) portssvc.SavingsSvcFacade {
	return &savingsService{savingsRepo: savingsRepo, txnRepo: txnRepo}
}

var _ portssvc.SavingsSvcFacade = (*savingsService)(nil)

// CreateAccount persists a new savings account.
func (s *savingsService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.SavingsAccount, error) {
	currency := domain.Currency(req.Currency)
	if currency == "" {
		currency = domain.ReferenceCurrency
	}
	icon := req.Icon
	if icon == "" {
		icon = "wallet"
	}
	color := req.Color
	if color == "" {
		color = "#6366f1"
	}

	account := &domain.SavingsAccount{
		Name:     req.Name,
		Type:     req.Type,
		Currency: currency,
		Icon:     icon,
		Color:    color,
		IsActive: true,
	}
	if err := s.savingsRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save savings account")
		return nil, fmt.Errorf("failed to save savings account: %w", err)
	}

	s.LogInfo(ctx, "Savings account created", slog.Int64("account_id", account.ID), slog.String("name", account.Name))
	return account, nil
}

// ListAccounts returns the active savings accounts.
func (s *savingsService) ListAccounts(ctx context.Context) ([]domain.SavingsAccount, error) {
	accounts, err := s.savingsRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list savings accounts")
		return nil, fmt.Errorf("failed to list savings accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies a partial edit to an account.
func (s *savingsService) UpdateAccount(ctx context.Context, id int64, req dto.UpdateAccountRequest) (*domain.SavingsAccount, error) {
	patch := domain.AccountPatch{
		Name:  req.Name,
		Type:  req.Type,
		Icon:  req.Icon,
		Color: req.Color,
	}
	if req.Currency != nil {
		currency := domain.Currency(*req.Currency)
		patch.Currency = &currency
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	if err := s.savingsRepo.UpdateAccount(ctx, id, patch); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update savings account", slog.Int64("account_id", id))
		}
		return nil, err
	}
	return s.savingsRepo.FindAccountByID(ctx, id)
}

// DeleteAccount soft-deletes an account: the movement history stays queryable.
func (s *savingsService) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.savingsRepo.DeactivateAccount(ctx, id); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate savings account", slog.Int64("account_id", id))
		}
		return err
	}
	s.LogInfo(ctx, "Savings account deactivated", slog.Int64("account_id", id))
	return nil
}

// AddMovement records a deposit/withdrawal and its paired ledger transaction
// as one atomic group; a failure of either insert leaves neither behind.
func (s *savingsService) AddMovement(ctx context.Context, req dto.CreateMovementRequest) (*dto.MovementCreated, error) {
	movType := domain.MovementType(req.Type)
	if !movType.IsValid() {
		return nil, fmt.Errorf("%w: type must be DEPOSIT or WITHDRAWAL", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	account, err := s.savingsRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	currency := domain.Currency(req.Currency)
	if currency == "" {
		currency = domain.ReferenceCurrency
	}
	description := req.Description
	if description == "" {
		description = domain.DefaultMovementDescription(movType, account.Name)
	}

	txn := &domain.Transaction{
		Type:         movType.TransactionType(),
		Amount:       req.Amount,
		Currency:     currency,
		ExchangeRate: req.ExchangeRate,
		Category:     domain.SavingsCategory,
		Description:  description,
		Date:         date,
	}
	movement := &domain.SavingsMovement{
		AccountID:    account.ID,
		Type:         movType,
		Amount:       req.Amount,
		Currency:     currency,
		ExchangeRate: req.ExchangeRate,
		Description:  req.Description,
		Date:         date,
	}

	if err := s.savingsRepo.SaveMovement(ctx, movement, txn); err != nil {
		s.LogError(ctx, err, "Failed to save savings movement", slog.Int64("account_id", account.ID))
		return nil, fmt.Errorf("failed to save savings movement: %w", err)
	}

	s.LogInfo(ctx, "Savings movement created",
		slog.Int64("movement_id", movement.ID),
		slog.Int64("transaction_id", txn.ID),
		slog.String("type", string(movType)),
	)
	return &dto.MovementCreated{ID: movement.ID, TransactionID: txn.ID}, nil
}

// ListMovements returns movements joined with account display fields,
// optionally filtered by account and limited.
func (s *savingsService) ListMovements(ctx context.Context, accountID *int64, limit int) ([]domain.MovementDetail, error) {
	movements, err := s.savingsRepo.ListMovements(ctx, accountID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list savings movements")
		return nil, fmt.Errorf("failed to list savings movements: %w", err)
	}
	return movements, nil
}

// DeleteMovement removes a movement. The paired ledger transaction is left in
// place: the ledger keeps the historical cash flow.
func (s *savingsService) DeleteMovement(ctx context.Context, id int64) error {
	if err := s.savingsRepo.DeleteMovement(ctx, id); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete savings movement", slog.Int64("movement_id", id))
		}
		return err
	}
	s.LogInfo(ctx, "Savings movement deleted", slog.Int64("movement_id", id))
	return nil
}

// Portfolio returns every active account with its balance in the account's
// own currency; the total includes only reference-currency accounts since no
// cross-account conversion is performed.
func (s *savingsService) Portfolio(ctx context.Context) (*domain.Portfolio, error) {
	balances, err := s.savingsRepo.AccountBalances(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute account balances")
		return nil, fmt.Errorf("failed to compute account balances: %w", err)
	}

	total := decimal.Zero
	for _, acc := range balances {
		if acc.Currency == domain.ReferenceCurrency {
			total = total.Add(acc.Balance)
		}
	}
	return &domain.Portfolio{Accounts: balances, TotalReference: total}, nil
}

// Available derives the ledger-wide "available to save" figure: normalized
// income minus normalized non-income spending, minus what is already allocated
// to savings (deposits net of withdrawals).
func (s *savingsService) Available(ctx context.Context) (*domain.AvailableReport, error) {
	txns, err := s.txnRepo.ListAllTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for available balance")
		return nil, fmt.Errorf("failed to load ledger: %w", apperrors.ErrInternal)
	}

	income := decimal.Zero
	expenses := decimal.Zero
	for _, txn := range txns {
		converted, ok := accounting.ToReference(txn.Amount, txn.Currency, txn.ExchangeRate)
		if !ok {
			continue
		}
		if txn.Type == domain.TypeIncome {
			income = income.Add(converted)
		} else {
			expenses = expenses.Add(converted)
		}
	}

	movements, err := s.savingsRepo.ListAllMovements(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load movements for available balance")
		return nil, fmt.Errorf("failed to load movements: %w", apperrors.ErrInternal)
	}

	allocated := decimal.Zero
	for _, mov := range movements {
		converted, ok := accounting.ToReference(mov.Amount, mov.Currency, mov.ExchangeRate)
		if !ok {
			continue
		}
		if mov.Type == domain.Deposit {
			allocated = allocated.Add(converted)
		} else {
			allocated = allocated.Sub(converted)
		}
	}

	netBalance := income.Sub(expenses)
	return &domain.AvailableReport{
		Income:     income,
		Expenses:   expenses,
		NetBalance: netBalance,
		Allocated:  allocated,
		Available:  netBalance.Sub(allocated),
	}, nil
}

package services

import (
	"context"

	"github.com/financeflow/backend/internal/core/domain"
	"github.com/financeflow/backend/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionSvcFacade exposes ledger operations.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, year int, month, category string) ([]domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	ListFixedExpenses(ctx context.Context, year, month int) ([]domain.Transaction, error)
	UpdateFixedExpense(ctx context.Context, id int64, req dto.UpdateFixedExpenseRequest) error
}

// InstallmentSvcFacade exposes the installment plan state machine and its
// payment journal.
type InstallmentSvcFacade interface {
	CreateInstallment(ctx context.Context, req dto.CreateInstallmentRequest) (*domain.Installment, error)
	ListInstallments(ctx context.Context, activeOnly bool) ([]domain.Installment, error)
	MarkPaid(ctx context.Context, planID int64, req dto.MarkPaidRequest) (*dto.MarkPaidResult, error)
	UpdatePaidCount(ctx context.Context, planID int64, newCount int) (*domain.Installment, error)
	ToggleActive(ctx context.Context, planID int64) (*domain.Installment, error)
	DeleteInstallment(ctx context.Context, planID int64) error
	NextUnpaidNumber(ctx context.Context, planID int64) (int, error)
	ListPayments(ctx context.Context, planID int64) ([]domain.PaymentDetail, error)
}

// ReplicatorSvcFacade copies fixed expenses month to month.
type ReplicatorSvcFacade interface {
	Replicate(ctx context.Context, year, month int, fallbackRate decimal.Decimal) (*dto.ReplicationResult, error)
}

// ReportingSvcFacade computes per-type and per-category summaries, raw
// (mixed currency) and normalized to the reference currency.
type ReportingSvcFacade interface {
	SummaryByType(ctx context.Context, year int, month string) (domain.TypeSummary, error)
	SummaryByTypeReference(ctx context.Context, year int, month string) (domain.TypeSummary, error)
	ExpensesByCategory(ctx context.Context, year int, month string) ([]domain.CategoryTotal, error)
	ExpensesByCategoryReference(ctx context.Context, year int, month string) ([]domain.CategoryTotal, error)
}

// SavingsSvcFacade exposes savings accounts, movements and the derived
// portfolio / available-to-save figures.
type SavingsSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.SavingsAccount, error)
	ListAccounts(ctx context.Context) ([]domain.SavingsAccount, error)
	UpdateAccount(ctx context.Context, id int64, req dto.UpdateAccountRequest) (*domain.SavingsAccount, error)
	DeleteAccount(ctx context.Context, id int64) error
	AddMovement(ctx context.Context, req dto.CreateMovementRequest) (*dto.MovementCreated, error)
	ListMovements(ctx context.Context, accountID *int64, limit int) ([]domain.MovementDetail, error)
	DeleteMovement(ctx context.Context, id int64) error
	Portfolio(ctx context.Context) (*domain.Portfolio, error)
	Available(ctx context.Context) (*domain.AvailableReport, error)
}

// RateLookupSvc resolves the reference exchange rate for an ISO date. It never
// returns an error: any failure degrades to a zero rate after one fallback to
// the latest known rate.
type RateLookupSvc interface {
	GetRate(ctx context.Context, date string) decimal.Decimal
}

// ServiceContainer bundles all service facades for route registration.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Installment InstallmentSvcFacade
	Replicator  ReplicatorSvcFacade
	Reporting   ReportingSvcFacade
	Savings     SavingsSvcFacade
	Rates       RateLookupSvc
}

package repositories

import (
	"context"

	"github.com/financeflow/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Month filters use "all" or empty for full-year queries and an exact
// two-digit month ("01".."12") otherwise.

// TransactionRepository defines the persistence operations for ledger entries.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn *domain.Transaction) error
	FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, year int, month, category string) ([]domain.Transaction, error)
	// ListAllTransactions returns the entire ledger; used by the ledger-wide
	// available-to-save derivation.
	ListAllTransactions(ctx context.Context) ([]domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	// SumByType groups raw amounts (mixed currency) by transaction type.
	SumByType(ctx context.Context, year int, month string) (map[domain.TransactionType]decimal.Decimal, error)
	// SumByCategory groups raw non-INCOME amounts by category, descending.
	SumByCategory(ctx context.Context, year int, month string) ([]domain.CategoryTotal, error)

	// ListFixedExpensesByMonth returns FIXED_EXPENSE rows dated in the given
	// month, ordered by description.
	ListFixedExpensesByMonth(ctx context.Context, year, month int) ([]domain.Transaction, error)
	// UpdateFixedExpense applies a partial edit to a FIXED_EXPENSE row; the
	// only permitted transaction mutation.
	UpdateFixedExpense(ctx context.Context, id int64, patch domain.FixedExpensePatch) error
}

// InstallmentRepository defines persistence for plans and their payment
// journal. SavePayment writes the ledger transaction, the journal row and the
// recomputed plan counters as one atomic group.
type InstallmentRepository interface {
	SaveInstallment(ctx context.Context, plan *domain.Installment) error
	FindInstallmentByID(ctx context.Context, id int64) (*domain.Installment, error)
	ListInstallments(ctx context.Context, activeOnly bool) ([]domain.Installment, error)
	UpdatePaidCount(ctx context.Context, id int64, paid int, isActive bool) error
	SetActive(ctx context.Context, id int64, active bool) error
	// DeleteInstallment removes the plan and cascades to its journal rows;
	// ledger transactions referenced by the journal are left in place.
	DeleteInstallment(ctx context.Context, id int64) error

	FindPaymentByNumber(ctx context.Context, installmentID int64, number int) (*domain.InstallmentPayment, error)
	ListPayments(ctx context.Context, installmentID int64) ([]domain.InstallmentPayment, error)
	ListPaymentDetails(ctx context.Context, installmentID int64) ([]domain.PaymentDetail, error)
	// SavePayment atomically inserts the ledger transaction and the journal
	// row, recounts the journal and updates the plan's paid/active state.
	// Returns the new paid count. A (installment_id, installment_number)
	// uniqueness violation surfaces as apperrors.ErrDuplicate.
	SavePayment(ctx context.Context, payment *domain.InstallmentPayment, txn *domain.Transaction) (int, error)
}

// SavingsRepository defines persistence for savings accounts and movements.
// SaveMovement writes the movement and its paired ledger transaction as one
// atomic group.
type SavingsRepository interface {
	SaveAccount(ctx context.Context, account *domain.SavingsAccount) error
	FindAccountByID(ctx context.Context, id int64) (*domain.SavingsAccount, error)
	ListAccounts(ctx context.Context) ([]domain.SavingsAccount, error)
	UpdateAccount(ctx context.Context, id int64, patch domain.AccountPatch) error
	// DeactivateAccount performs the soft delete; movement history survives.
	DeactivateAccount(ctx context.Context, id int64) error

	SaveMovement(ctx context.Context, mov *domain.SavingsMovement, txn *domain.Transaction) error
	ListMovements(ctx context.Context, accountID *int64, limit int) ([]domain.MovementDetail, error)
	ListAllMovements(ctx context.Context) ([]domain.SavingsMovement, error)
	DeleteMovement(ctx context.Context, id int64) error

	// AccountBalances returns every active account with its deposit-minus-
	// withdrawal balance in the account's own currency.
	AccountBalances(ctx context.Context) ([]domain.AccountBalance, error)
}

// RepositoryProvider bundles all repositories for dependency injection.
type RepositoryProvider struct {
	TransactionRepo TransactionRepository
	InstallmentRepo InstallmentRepository
	SavingsRepo     SavingsRepository
}

package services_test

import (
	"context"

	"github.com/financeflow/backend/internal/core/domain"
	portsrepo "github.com/financeflow/backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, year int, month, category string) ([]domain.Transaction, error) {
	args := m.Called(ctx, year, month, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) SumByType(ctx context.Context, year int, month string) (map[domain.TransactionType]decimal.Decimal, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TransactionType]decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SumByCategory(ctx context.Context, year int, month string) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockTransactionRepository) ListFixedExpensesByMonth(ctx context.Context, year, month int) ([]domain.Transaction, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateFixedExpense(ctx context.Context, id int64, patch domain.FixedExpensePatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

// --- Mock InstallmentRepository ---
type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) SaveInstallment(ctx context.Context, plan *domain.Installment) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockInstallmentRepository) FindInstallmentByID(ctx context.Context, id int64) (*domain.Installment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) ListInstallments(ctx context.Context, activeOnly bool) ([]domain.Installment, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) UpdatePaidCount(ctx context.Context, id int64, paid int, isActive bool) error {
	args := m.Called(ctx, id, paid, isActive)
	return args.Error(0)
}

func (m *MockInstallmentRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockInstallmentRepository) DeleteInstallment(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInstallmentRepository) FindPaymentByNumber(ctx context.Context, installmentID int64, number int) (*domain.InstallmentPayment, error) {
	args := m.Called(ctx, installmentID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentPayment), args.Error(1)
}

func (m *MockInstallmentRepository) ListPayments(ctx context.Context, installmentID int64) ([]domain.InstallmentPayment, error) {
	args := m.Called(ctx, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InstallmentPayment), args.Error(1)
}

func (m *MockInstallmentRepository) ListPaymentDetails(ctx context.Context, installmentID int64) ([]domain.PaymentDetail, error) {
	args := m.Called(ctx, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentDetail), args.Error(1)
}

func (m *MockInstallmentRepository) SavePayment(ctx context.Context, payment *domain.InstallmentPayment, txn *domain.Transaction) (int, error) {
	args := m.Called(ctx, payment, txn)
	return args.Int(0), args.Error(1)
}

var _ portsrepo.InstallmentRepository = (*MockInstallmentRepository)(nil)

// --- Mock SavingsRepository ---
type MockSavingsRepository struct {
	mock.Mock
}

func (m *MockSavingsRepository) SaveAccount(ctx context.Context, account *domain.SavingsAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockSavingsRepository) FindAccountByID(ctx context.Context, id int64) (*domain.SavingsAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsAccount), args.Error(1)
}

func (m *MockSavingsRepository) ListAccounts(ctx context.Context) ([]domain.SavingsAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsAccount), args.Error(1)
}

func (m *MockSavingsRepository) UpdateAccount(ctx context.Context, id int64, patch domain.AccountPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockSavingsRepository) DeactivateAccount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSavingsRepository) SaveMovement(ctx context.Context, mov *domain.SavingsMovement, txn *domain.Transaction) error {
	args := m.Called(ctx, mov, txn)
	return args.Error(0)
}

func (m *MockSavingsRepository) ListMovements(ctx context.Context, accountID *int64, limit int) ([]domain.MovementDetail, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementDetail), args.Error(1)
}

func (m *MockSavingsRepository) ListAllMovements(ctx context.Context) ([]domain.SavingsMovement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsMovement), args.Error(1)
}

func (m *MockSavingsRepository) DeleteMovement(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSavingsRepository) AccountBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

var _ portsrepo.SavingsRepository = (*MockSavingsRepository)(nil)

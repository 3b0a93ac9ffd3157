package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/financeflow/backend/internal/apperrors"
	"github.com/financeflow/backend/internal/core/domain"
	"github.com/financeflow/backend/internal/core/services"
	"github.com/financeflow/backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func TestSavingsService(t *testing.T) {
	suite.Run(t, new(SavingsServiceSuite))
}

type SavingsServiceSuite struct {
	suite.Suite
	savingsRepo *MockSavingsRepository
	txnRepo     *MockTransactionRepository
	ctx         context.Context
}

func (s *SavingsServiceSuite) SetupTest() {
	s.savingsRepo = new(MockSavingsRepository)
	s.txnRepo = new(MockTransactionRepository)
	s.ctx = context.Background()
}

func (s *SavingsServiceSuite) TestCreateAccount_Defaults() {
	svc := services.NewSavingsService(s.savingsRepo, s.txnRepo)

	s.savingsRepo.On("SaveAccount", s.ctx, mock.MatchedBy(func(acc *domain.SavingsAccount) bool {
		return acc.Currency == domain.CurrencyUSD &&
			acc.Icon == "wallet" &&
			acc.Color == "#6366f1" &&
			acc.IsActive
	})).Return(nil).Once()

	account, err := svc.CreateAccount(s.ctx, dto.CreateAccountRequest{Name: "Banco", Type: "bank"})
	s.Require().NoError(err)
	s.Equal("Banco", account.Name)
	s.savingsRepo.AssertExpectations(s.T())
}

func (s *SavingsServiceSuite) TestAddMovement_PairsLedgerTransaction() {
	svc := services.NewSavingsService(s.savingsRepo, s.txnRepo)

	account := &domain.SavingsAccount{ID: 4, Name: "Broker", Currency: domain.CurrencyUSD, IsActive: true}
	s.savingsRepo.On("FindAccountByID", s.ctx, int64(4)).Return(account, nil).Once()
	s.savingsRepo.On("SaveMovement", s.ctx,
		mock.MatchedBy(func(mov *domain.SavingsMovement) bool {
			return mov.AccountID == 4 && mov.Type == domain.Deposit && mov.Amount.Equal(decimal.NewFromInt(200))
		}),
		mock.MatchedBy(func(txn *domain.Transaction) bool {
			return txn.Type == domain.TypeSavingDeposit &&
				txn.Category == domain.SavingsCategory &&
				txn.Description == "Ahorro → Broker"
		}),
	).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.SavingsMovement).ID = 11
		args.Get(2).(*domain.Transaction).ID = 99
	}).Return(nil).Once()

	created, err := svc.AddMovement(s.ctx, dto.CreateMovementRequest{
		AccountID: 4,
		Type:      "DEPOSIT",
		Amount:    decimal.NewFromInt(200),
		Date:      "2026-08-15",
	})
	s.Require().NoError(err)
	s.Equal(int64(11), created.ID)
	s.Equal(int64(99), created.TransactionID)
	s.savingsRepo.AssertExpectations(s.T())
}

func (s *SavingsServiceSuite) TestAddMovement_UnknownAccount() {
	svc := services.NewSavingsService(s.savingsRepo, s.txnRepo)

	s.savingsRepo.On("FindAccountByID", s.ctx, int64(9)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.AddMovement(s.ctx, dto.CreateMovementRequest{
		AccountID: 9,
		Type:      "WITHDRAWAL",
		Amount:    decimal.NewFromInt(50),
		Date:      "2026-08-15",
	})
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.savingsRepo.AssertNotCalled(s.T(), "SaveMovement", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SavingsServiceSuite) TestPortfolio_TotalsReferenceAccountsOnly() {
	svc := services.NewSavingsService(s.savingsRepo, s.txnRepo)

	s.savingsRepo.On("AccountBalances", s.ctx).Return([]domain.AccountBalance{
		{
			SavingsAccount: domain.SavingsAccount{ID: 1, Name: "Broker", Currency: domain.CurrencyUSD},
			Balance:        decimal.NewFromInt(300),
		},
		{
			SavingsAccount: domain.SavingsAccount{ID: 2, Name: "Caja", Currency: domain.CurrencyARS},
			Balance:        decimal.NewFromInt(100000),
		},
		{
			SavingsAccount: domain.SavingsAccount{ID: 3, Name: "Banco", Currency: domain.CurrencyUSD},
			Balance:        decimal.NewFromInt(200),
		},
	}, nil).Once()

	portfolio, err := svc.Portfolio(s.ctx)
	s.Require().NoError(err)
	s.Len(portfolio.Accounts, 3)
	s.True(portfolio.TotalReference.Equal(decimal.NewFromInt(500)), "got %s", portfolio.TotalReference)
}

func (s *SavingsServiceSuite) TestAvailable_Arithmetic() {
	svc := services.NewSavingsService(s.savingsRepo, s.txnRepo)

	s.txnRepo.On("ListAllTransactions", s.ctx).Return([]domain.Transaction{
		{Type: domain.TypeIncome, Amount: decimal.NewFromInt(1000), Currency: domain.CurrencyUSD},
		{Type: domain.TypeExpense, Amount: decimal.NewFromInt(300), Currency: domain.CurrencyUSD},
		{Type: domain.TypeFixedExpense, Amount: decimal.NewFromInt(100000), Currency: domain.CurrencyARS, ExchangeRate: decimal.NewFromInt(1000)},
		// Unknown rate: excluded from the sums instead of corrupting them.
		{Type: domain.TypeExpense, Amount: decimal.NewFromInt(5000), Currency: domain.CurrencyARS, ExchangeRate: decimal.Zero},
	}, nil).Once()
	s.savingsRepo.On("ListAllMovements", s.ctx).Return([]domain.SavingsMovement{
		{Type: domain.Deposit, Amount: decimal.NewFromInt(250), Currency: domain.CurrencyUSD},
		{Type: domain.Withdrawal, Amount: decimal.NewFromInt(50), Currency: domain.CurrencyUSD},
	}, nil).Once()

	report, err := svc.Available(s.ctx)
	s.Require().NoError(err)
	s.True(report.Income.Equal(decimal.NewFromInt(1000)))
	s.True(report.Expenses.Equal(decimal.NewFromInt(400)), "got %s", report.Expenses)
	s.True(report.NetBalance.Equal(decimal.NewFromInt(600)))
	s.True(report.Allocated.Equal(decimal.NewFromInt(200)))
	s.True(report.Available.Equal(decimal.NewFromInt(400)), "got %s", report.Available)
}

func (s *SavingsServiceSuite) TestAvailable_LedgerFailureIsInternal() {
	svc := services.NewSavingsService(s.savingsRepo, s.txnRepo)

	s.txnRepo.On("ListAllTransactions", s.ctx).Return(nil, errors.New("connection reset")).Once()

	_, err := svc.Available(s.ctx)
	s.Require().ErrorIs(err, apperrors.ErrInternal)
	s.savingsRepo.AssertNotCalled(s.T(), "ListAllMovements", mock.Anything)
}

func (s *SavingsServiceSuite) TestUpdateAccount_EmptyPatchRejected() {
	svc := services.NewSavingsService(s.savingsRepo, s.txnRepo)

	_, err := svc.UpdateAccount(s.ctx, 4, dto.UpdateAccountRequest{})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.savingsRepo.AssertNotCalled(s.T(), "UpdateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SavingsServiceSuite) TestDeleteAccount_SoftDelete() {
	svc := services.NewSavingsService(s.savingsRepo, s.txnRepo)

	s.savingsRepo.On("DeactivateAccount", s.ctx, int64(4)).Return(nil).Once()

	s.Require().NoError(svc.DeleteAccount(s.ctx, 4))
	s.savingsRepo.AssertExpectations(s.T())
}

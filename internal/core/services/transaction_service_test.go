package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/financeflow/backend/internal/apperrors"
	"github.com/financeflow/backend/internal/core/domain"
	"github.com/financeflow/backend/internal/core/services"
	"github.com/financeflow/backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceSuite))
}

type TransactionServiceSuite struct {
	suite.Suite
	txnRepo *MockTransactionRepository
	ctx     context.Context
}

func (s *TransactionServiceSuite) SetupTest() {
	s.txnRepo = new(MockTransactionRepository)
	s.ctx = context.Background()
}

func (s *TransactionServiceSuite) TestCreateTransaction_Defaults() {
	svc := services.NewTransactionService(s.txnRepo)

	s.txnRepo.On("SaveTransaction", s.ctx, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Currency == domain.CurrencyARS &&
			txn.Category == domain.DefaultCategory &&
			txn.Date.Equal(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	txn, err := svc.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Type:   "EXPENSE",
		Amount: decimal.NewFromInt(1500),
		Date:   "2026-08-20",
	})
	s.Require().NoError(err)
	s.Equal(domain.TypeExpense, txn.Type)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceSuite) TestCreateTransaction_RejectsLegacyType() {
	svc := services.NewTransactionService(s.txnRepo)

	_, err := svc.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Type:   "MAJOR_EXPENSE",
		Amount: decimal.NewFromInt(100),
		Date:   "2026-08-20",
	})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceSuite) TestCreateTransaction_RejectsBadDate() {
	svc := services.NewTransactionService(s.txnRepo)

	_, err := svc.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Type:   "INCOME",
		Amount: decimal.NewFromInt(100),
		Date:   "20/08/2026",
	})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceSuite) TestListFixedExpenses_ValidatesMonth() {
	svc := services.NewTransactionService(s.txnRepo)

	_, err := svc.ListFixedExpenses(s.ctx, 2026, 0)
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = svc.ListFixedExpenses(s.ctx, 2026, 13)
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceSuite) TestUpdateFixedExpense_EmptyPatchRejected() {
	svc := services.NewTransactionService(s.txnRepo)

	err := svc.UpdateFixedExpense(s.ctx, 3, dto.UpdateFixedExpenseRequest{})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.txnRepo.AssertNotCalled(s.T(), "UpdateFixedExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceSuite) TestUpdateFixedExpense_NonPositiveAmountRejected() {
	svc := services.NewTransactionService(s.txnRepo)
	amount := decimal.Zero

	err := svc.UpdateFixedExpense(s.ctx, 3, dto.UpdateFixedExpenseRequest{Amount: &amount})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/financeflow/backend/internal/apperrors"
	"github.com/financeflow/backend/internal/core/domain"
	"github.com/financeflow/backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func TestReplicatorService(t *testing.T) {
	suite.Run(t, new(ReplicatorServiceSuite))
}

type ReplicatorServiceSuite struct {
	suite.Suite
	txnRepo *MockTransactionRepository
	ctx     context.Context
}

func (s *ReplicatorServiceSuite) SetupTest() {
	s.txnRepo = new(MockTransactionRepository)
	s.ctx = context.Background()
}

func fixedExpense(description string, currency domain.Currency, rate int64) domain.Transaction {
	return domain.Transaction{
		Type:         domain.TypeFixedExpense,
		Amount:       decimal.NewFromInt(10000),
		Currency:     currency,
		ExchangeRate: decimal.NewFromInt(rate),
		Category:     "Servicios",
		Description:  description,
		Date:         time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *ReplicatorServiceSuite) TestReplicate_CopiesMissingRowsDatedFirst() {
	svc := services.NewReplicatorService(s.txnRepo)

	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 7).Return([]domain.Transaction{
		fixedExpense("Alquiler", domain.CurrencyARS, 1200),
		fixedExpense("Internet", domain.CurrencyARS, 1200),
	}, nil).Once()
	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 8).Return([]domain.Transaction{
		fixedExpense("Internet", domain.CurrencyARS, 1200),
	}, nil).Once()
	s.txnRepo.On("SaveTransaction", s.ctx, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Description == "Alquiler" &&
			txn.Type == domain.TypeFixedExpense &&
			txn.Date.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	result, err := svc.Replicate(s.ctx, 2026, 8, decimal.Zero)
	s.Require().NoError(err)
	s.Equal(1, result.Created)
	s.Equal(0, result.Failed)
	s.Len(result.Items, 1)
	s.True(result.Items[0].OK)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *ReplicatorServiceSuite) TestReplicate_JanuaryReadsDecemberOfPreviousYear() {
	svc := services.NewReplicatorService(s.txnRepo)

	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2025, 12).Return([]domain.Transaction{
		fixedExpense("Alquiler", domain.CurrencyARS, 1000),
	}, nil).Once()
	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 1).Return([]domain.Transaction{}, nil).Once()
	s.txnRepo.On("SaveTransaction", s.ctx, mock.Anything).Return(nil).Once()

	result, err := svc.Replicate(s.ctx, 2026, 1, decimal.Zero)
	s.Require().NoError(err)
	s.Equal(1, result.Created)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *ReplicatorServiceSuite) TestReplicate_EmptySourceMonth() {
	svc := services.NewReplicatorService(s.txnRepo)

	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 7).Return([]domain.Transaction{}, nil).Once()

	_, err := svc.Replicate(s.ctx, 2026, 8, decimal.Zero)
	s.Require().ErrorIs(err, services.ErrNoSourceData)
}

func (s *ReplicatorServiceSuite) TestReplicate_IdempotentWhenAllExist() {
	svc := services.NewReplicatorService(s.txnRepo)
	rows := []domain.Transaction{fixedExpense("Alquiler", domain.CurrencyARS, 1200)}

	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 7).Return(rows, nil).Once()
	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 8).Return(rows, nil).Once()

	_, err := svc.Replicate(s.ctx, 2026, 8, decimal.Zero)
	s.Require().ErrorIs(err, services.ErrAllAlreadyExist)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *ReplicatorServiceSuite) TestReplicate_PartialFailureKeepsSuccesses() {
	svc := services.NewReplicatorService(s.txnRepo)

	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 7).Return([]domain.Transaction{
		fixedExpense("Alquiler", domain.CurrencyARS, 1200),
		fixedExpense("Luz", domain.CurrencyARS, 1200),
	}, nil).Once()
	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 8).Return([]domain.Transaction{}, nil).Once()
	s.txnRepo.On("SaveTransaction", s.ctx, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Description == "Alquiler"
	})).Return(nil).Once()
	s.txnRepo.On("SaveTransaction", s.ctx, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Description == "Luz"
	})).Return(errors.New("insert failed")).Once()

	result, err := svc.Replicate(s.ctx, 2026, 8, decimal.Zero)
	s.Require().NoError(err)
	s.Equal(1, result.Created)
	s.Equal(1, result.Failed)
	s.Len(result.Items, 2)
}

func (s *ReplicatorServiceSuite) TestReplicate_RateResolution() {
	svc := services.NewReplicatorService(s.txnRepo)

	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 7).Return([]domain.Transaction{
		fixedExpense("Netflix USD", domain.CurrencyUSD, 1200),
		fixedExpense("Alquiler", domain.CurrencyARS, 1100),
		fixedExpense("Luz sin tasa", domain.CurrencyARS, 0),
	}, nil).Once()
	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 8).Return([]domain.Transaction{}, nil).Once()

	// Reference-currency rows get rate 1 regardless of source rate.
	s.txnRepo.On("SaveTransaction", s.ctx, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Description == "Netflix USD" && txn.ExchangeRate.Equal(decimal.NewFromInt(1))
	})).Return(nil).Once()
	// With no fallback, the source row's own captured rate carries over.
	s.txnRepo.On("SaveTransaction", s.ctx, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Description == "Alquiler" && txn.ExchangeRate.Equal(decimal.NewFromInt(1100))
	})).Return(nil).Once()
	// No fallback and no source rate degrades to zero (unknown).
	s.txnRepo.On("SaveTransaction", s.ctx, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Description == "Luz sin tasa" && txn.ExchangeRate.IsZero()
	})).Return(nil).Once()

	result, err := svc.Replicate(s.ctx, 2026, 8, decimal.Zero)
	s.Require().NoError(err)
	s.Equal(3, result.Created)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *ReplicatorServiceSuite) TestReplicate_FallbackRateWinsOverSourceRate() {
	svc := services.NewReplicatorService(s.txnRepo)

	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 7).Return([]domain.Transaction{
		fixedExpense("Alquiler", domain.CurrencyARS, 1100),
	}, nil).Once()
	s.txnRepo.On("ListFixedExpensesByMonth", s.ctx, 2026, 8).Return([]domain.Transaction{}, nil).Once()
	s.txnRepo.On("SaveTransaction", s.ctx, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.ExchangeRate.Equal(decimal.NewFromInt(1300))
	})).Return(nil).Once()

	_, err := svc.Replicate(s.ctx, 2026, 8, decimal.NewFromInt(1300))
	s.Require().NoError(err)
	s.txnRepo.AssertExpectations(s.T())
}

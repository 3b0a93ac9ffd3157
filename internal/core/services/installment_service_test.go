package services_test

import (
	"context"
	"testing"

	"github.com/financeflow/backend/internal/apperrors"
	"github.com/financeflow/backend/internal/core/domain"
	"github.com/financeflow/backend/internal/core/services"
	"github.com/financeflow/backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func TestInstallmentService(t *testing.T) {
	suite.Run(t, new(InstallmentServiceSuite))
}

type InstallmentServiceSuite struct {
	suite.Suite
	planRepo *MockInstallmentRepository
	ctx      context.Context
}

func (s *InstallmentServiceSuite) SetupTest() {
	s.planRepo = new(MockInstallmentRepository)
	s.ctx = context.Background()
}

func (s *InstallmentServiceSuite) plan(paid int) *domain.Installment {
	return &domain.Installment{
		ID:                   7,
		Description:          "Notebook",
		CardName:             "Visa",
		AmountPerInstallment: decimal.NewFromInt(30000),
		TotalInstallments:    3,
		InstallmentsPaid:     paid,
		IsActive:             true,
		Currency:             domain.CurrencyARS,
	}
}

func (s *InstallmentServiceSuite) TestMarkPaid_SequentialCompletion() {
	svc := services.NewInstallmentService(s.planRepo)

	for number := 1; number <= 3; number++ {
		s.planRepo.On("FindInstallmentByID", s.ctx, int64(7)).Return(s.plan(number-1), nil).Once()
		s.planRepo.On("FindPaymentByNumber", s.ctx, int64(7), number).Return(nil, apperrors.ErrNotFound).Once()
		s.planRepo.On("SavePayment", s.ctx, mock.AnythingOfType("*domain.InstallmentPayment"), mock.AnythingOfType("*domain.Transaction")).Return(number, nil).Once()

		result, err := svc.MarkPaid(s.ctx, 7, dto.MarkPaidRequest{ExchangeRate: decimal.NewFromInt(1000)})
		s.Require().NoError(err)
		s.Equal(number, result.PaymentNumber)
		s.Equal(number, result.NewPaidCount)
		s.Equal(number == 3, result.IsComplete)
	}
	s.planRepo.AssertExpectations(s.T())
}

func (s *InstallmentServiceSuite) TestMarkPaid_BuildsLedgerEntry() {
	svc := services.NewInstallmentService(s.planRepo)

	s.planRepo.On("FindInstallmentByID", s.ctx, int64(7)).Return(s.plan(1), nil).Once()
	s.planRepo.On("FindPaymentByNumber", s.ctx, int64(7), 2).Return(nil, apperrors.ErrNotFound).Once()
	s.planRepo.On("SavePayment", s.ctx, mock.Anything, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Type == domain.TypeInstallment &&
			txn.Category == domain.InstallmentCategory &&
			txn.Description == "Notebook (2/3)" &&
			txn.Amount.Equal(decimal.NewFromInt(30000)) &&
			txn.ExchangeRate.Equal(decimal.NewFromInt(1250))
	})).Return(2, nil).Once()

	_, err := svc.MarkPaid(s.ctx, 7, dto.MarkPaidRequest{ExchangeRate: decimal.NewFromInt(1250), PaymentDate: "2026-08-01"})
	s.Require().NoError(err)
	s.planRepo.AssertExpectations(s.T())
}

func (s *InstallmentServiceSuite) TestMarkPaid_DuplicateNumberRejected() {
	svc := services.NewInstallmentService(s.planRepo)
	number := 2

	s.planRepo.On("FindInstallmentByID", s.ctx, int64(7)).Return(s.plan(2), nil).Once()
	s.planRepo.On("FindPaymentByNumber", s.ctx, int64(7), number).
		Return(&domain.InstallmentPayment{InstallmentID: 7, InstallmentNumber: number}, nil).Once()

	_, err := svc.MarkPaid(s.ctx, 7, dto.MarkPaidRequest{InstallmentNumber: &number})
	s.Require().ErrorIs(err, services.ErrDuplicatePayment)
	s.planRepo.AssertNotCalled(s.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (s *InstallmentServiceSuite) TestMarkPaid_RaceSurfacesAsDuplicate() {
	// The journal check passes but the unique index trips inside SavePayment.
	svc := services.NewInstallmentService(s.planRepo)

	s.planRepo.On("FindInstallmentByID", s.ctx, int64(7)).Return(s.plan(0), nil).Once()
	s.planRepo.On("FindPaymentByNumber", s.ctx, int64(7), 1).Return(nil, apperrors.ErrNotFound).Once()
	s.planRepo.On("SavePayment", s.ctx, mock.Anything, mock.Anything).Return(0, apperrors.ErrDuplicate).Once()

	_, err := svc.MarkPaid(s.ctx, 7, dto.MarkPaidRequest{})
	s.Require().ErrorIs(err, services.ErrDuplicatePayment)
}

func (s *InstallmentServiceSuite) TestMarkPaid_NumberOutOfRange() {
	svc := services.NewInstallmentService(s.planRepo)

	for _, number := range []int{0, 4} {
		n := number
		s.planRepo.On("FindInstallmentByID", s.ctx, int64(7)).Return(s.plan(0), nil).Once()

		_, err := svc.MarkPaid(s.ctx, 7, dto.MarkPaidRequest{InstallmentNumber: &n})
		s.Require().ErrorIs(err, services.ErrInvalidInstallmentNumber)
	}
	s.planRepo.AssertNotCalled(s.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (s *InstallmentServiceSuite) TestMarkPaid_ReferenceCurrencyForcesUnitRate() {
	svc := services.NewInstallmentService(s.planRepo)

	plan := s.plan(0)
	plan.Currency = domain.CurrencyUSD
	s.planRepo.On("FindInstallmentByID", s.ctx, int64(7)).Return(plan, nil).Once()
	s.planRepo.On("FindPaymentByNumber", s.ctx, int64(7), 1).Return(nil, apperrors.ErrNotFound).Once()
	s.planRepo.On("SavePayment", s.ctx, mock.Anything, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.ExchangeRate.Equal(decimal.NewFromInt(1))
	})).Return(1, nil).Once()

	// The caller-sent rate must be ignored for reference-currency plans.
	_, err := svc.MarkPaid(s.ctx, 7, dto.MarkPaidRequest{ExchangeRate: decimal.NewFromInt(1300)})
	s.Require().NoError(err)
	s.planRepo.AssertExpectations(s.T())
}

func (s *InstallmentServiceSuite) TestUpdatePaidCount_CompletionDeactivates() {
	svc := services.NewInstallmentService(s.planRepo)

	s.planRepo.On("FindInstallmentByID", s.ctx, int64(7)).Return(s.plan(1), nil).Once()
	s.planRepo.On("UpdatePaidCount", s.ctx, int64(7), 3, false).Return(nil).Once()

	plan, err := svc.UpdatePaidCount(s.ctx, 7, 3)
	s.Require().NoError(err)
	s.Equal(3, plan.InstallmentsPaid)
	s.False(plan.IsActive)
}

func (s *InstallmentServiceSuite) TestUpdatePaidCount_PartialPreservesActiveFlag() {
	svc := services.NewInstallmentService(s.planRepo)

	paused := s.plan(1)
	paused.IsActive = false
	s.planRepo.On("FindInstallmentByID", s.ctx, int64(7)).Return(paused, nil).Once()
	s.planRepo.On("UpdatePaidCount", s.ctx, int64(7), 2, false).Return(nil).Once()

	plan, err := svc.UpdatePaidCount(s.ctx, 7, 2)
	s.Require().NoError(err)
	s.False(plan.IsActive)
}

func (s *InstallmentServiceSuite) TestToggleActive_Flips() {
	svc := services.NewInstallmentService(s.planRepo)

	s.planRepo.On("FindInstallmentByID", s.ctx, int64(7)).Return(s.plan(1), nil).Once()
	s.planRepo.On("SetActive", s.ctx, int64(7), false).Return(nil).Once()

	plan, err := svc.ToggleActive(s.ctx, 7)
	s.Require().NoError(err)
	s.False(plan.IsActive)
}

func (s *InstallmentServiceSuite) TestNextUnpaidNumber_FillsJournalGap() {
	svc := services.NewInstallmentService(s.planRepo)

	s.planRepo.On("FindInstallmentByID", s.ctx, int64(7)).Return(s.plan(2), nil).Once()
	s.planRepo.On("ListPayments", s.ctx, int64(7)).Return([]domain.InstallmentPayment{
		{InstallmentNumber: 1},
		{InstallmentNumber: 3},
	}, nil).Once()

	next, err := svc.NextUnpaidNumber(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal(2, next)
}

func (s *InstallmentServiceSuite) TestCreateInstallment_RejectsNonPositiveAmount() {
	svc := services.NewInstallmentService(s.planRepo)
	paid := 0

	_, err := svc.CreateInstallment(s.ctx, dto.CreateInstallmentRequest{
		Description:          "TV",
		CardName:             "Visa",
		AmountPerInstallment: decimal.Zero,
		TotalInstallments:    6,
		InstallmentsPaid:     &paid,
		StartDate:            "2026-08-01",
	})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

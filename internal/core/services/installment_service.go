package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/financeflow/backend/internal/apperrors"
	"github.com/financeflow/backend/internal/core/domain"
	portsrepo "github.com/financeflow/backend/internal/core/ports/repositories"
	portssvc "github.com/financeflow/backend/internal/core/ports/services"
	"github.com/financeflow/backend/internal/dto"
	"github.com/shopspring/decimal"
)

var (
	// ErrDuplicatePayment signals that the installment number is already in
	// the payment journal: the at-most-once guarantee.
	ErrDuplicatePayment = errors.New("installment number already paid")
	// ErrInvalidInstallmentNumber signals a number outside 1..total.
	ErrInvalidInstallmentNumber = errors.New("installment number out of range")
)

// installmentService owns the plan state machine and its payment journal.
type installmentService struct {
	BaseService
	planRepo portsrepo.InstallmentRepository
}

// NewInstallmentService creates a new InstallmentService.
func NewInstallmentService(planRepo portsrepo.InstallmentRepository) portssvc.InstallmentSvcFacade {
	return &installmentService{planRepo: planRepo}
}

var _ portssvc.InstallmentSvcFacade = (*installmentService)(nil)

// CreateInstallment persists a new plan. The initial paid count and active
// flag are taken from the caller as declared, without cross-validation.
func (s *installmentService) CreateInstallment(ctx context.Context, req dto.CreateInstallmentRequest) (*domain.Installment, error) {
	if req.AmountPerInstallment.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount per installment must be positive", apperrors.ErrValidation)
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	currency := domain.Currency(req.Currency)
	if currency == "" {
		currency = domain.CurrencyARS
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	plan := &domain.Installment{
		Description:          req.Description,
		CardName:             req.CardName,
		AmountPerInstallment: req.AmountPerInstallment,
		TotalInstallments:    req.TotalInstallments,
		InstallmentsPaid:     *req.InstallmentsPaid,
		StartDate:            startDate,
		IsActive:             isActive,
		Currency:             currency,
	}

	if err := s.planRepo.SaveInstallment(ctx, plan); err != nil {
		s.LogError(ctx, err, "Failed to save installment plan")
		return nil, fmt.Errorf("failed to save installment plan: %w", err)
	}

	s.LogInfo(ctx, "Installment plan created", slog.Int64("installment_id", plan.ID), slog.Int("total", plan.TotalInstallments))
	return plan, nil
}

// ListInstallments returns all plans, or only the active ones.
func (s *installmentService) ListInstallments(ctx context.Context, activeOnly bool) ([]domain.Installment, error) {
	plans, err := s.planRepo.ListInstallments(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list installment plans")
		return nil, fmt.Errorf("failed to list installment plans: %w", err)
	}
	return plans, nil
}

// MarkPaid records the payment of one numbered installment: it inserts the
// ledger transaction and the journal row atomically, recomputes the paid
// count from the journal and re-derives the active flag.
func (s *installmentService) MarkPaid(ctx context.Context, planID int64, req dto.MarkPaidRequest) (*dto.MarkPaidResult, error) {
	plan, err := s.planRepo.FindInstallmentByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	// Resolve the target number: explicit, or the next after the stored count.
	number := plan.InstallmentsPaid + 1
	if req.InstallmentNumber != nil {
		number = *req.InstallmentNumber
	}
	if number < 1 || number > plan.TotalInstallments {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidInstallmentNumber, number, plan.TotalInstallments)
	}

	// The journal, not the stored count, is the source of truth for the
	// at-most-once check; a unique constraint backs this up inside SavePayment.
	existing, err := s.planRepo.FindPaymentByNumber(ctx, planID, number)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check payment journal", slog.Int64("installment_id", planID), slog.Int("number", number))
		return nil, fmt.Errorf("failed to check payment journal: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: installment %d of plan %d", ErrDuplicatePayment, number, planID)
	}

	paymentDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.PaymentDate != "" {
		paymentDate, err = parseDate(req.PaymentDate)
		if err != nil {
			return nil, err
		}
	}

	// Plans already denominated in the reference currency need no conversion:
	// force rate 1 regardless of what the caller sent.
	rate := req.ExchangeRate
	if plan.Currency == domain.ReferenceCurrency {
		rate = decimal.NewFromInt(1)
	}

	txn := &domain.Transaction{
		Type:         domain.TypeInstallment,
		Amount:       plan.AmountPerInstallment,
		Currency:     plan.Currency,
		ExchangeRate: rate,
		Category:     domain.InstallmentCategory,
		Description:  plan.PaymentDescription(number),
		Date:         paymentDate,
	}
	payment := &domain.InstallmentPayment{
		InstallmentID:     planID,
		InstallmentNumber: number,
		PaymentDate:       paymentDate,
	}

	paidCount, err := s.planRepo.SavePayment(ctx, payment, txn)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: installment %d of plan %d", ErrDuplicatePayment, number, planID)
		}
		s.LogError(ctx, err, "Failed to save installment payment", slog.Int64("installment_id", planID), slog.Int("number", number))
		return nil, fmt.Errorf("failed to save installment payment: %w", err)
	}

	isComplete := !domain.DeriveActive(paidCount, plan.TotalInstallments)
	s.LogInfo(ctx, "Installment paid",
		slog.Int64("installment_id", planID),
		slog.Int("number", number),
		slog.Int("paid_count", paidCount),
		slog.Bool("complete", isComplete),
	)

	return &dto.MarkPaidResult{
		TransactionID: payment.TransactionID,
		PaymentNumber: number,
		NewPaidCount:  paidCount,
		IsComplete:    isComplete,
	}, nil
}

// UpdatePaidCount is the manual override of the stored paid count. It bypasses
// the payment journal, so count and journal may diverge afterwards; the next
// unpaid number is always derived from the journal for that reason.
func (s *installmentService) UpdatePaidCount(ctx context.Context, planID int64, newCount int) (*domain.Installment, error) {
	plan, err := s.planRepo.FindInstallmentByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	isActive := plan.IsActive
	if newCount >= plan.TotalInstallments {
		isActive = false
	}

	if err := s.planRepo.UpdatePaidCount(ctx, planID, newCount, isActive); err != nil {
		s.LogError(ctx, err, "Failed to update paid count", slog.Int64("installment_id", planID))
		return nil, fmt.Errorf("failed to update paid count: %w", err)
	}

	plan.InstallmentsPaid = newCount
	plan.IsActive = isActive
	s.LogInfo(ctx, "Installment paid count overridden", slog.Int64("installment_id", planID), slog.Int("paid_count", newCount))
	return plan, nil
}

// ToggleActive flips the active flag unconditionally: the manual pause
// override, independent of the paid count.
func (s *installmentService) ToggleActive(ctx context.Context, planID int64) (*domain.Installment, error) {
	plan, err := s.planRepo.FindInstallmentByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	newStatus := !plan.IsActive
	if err := s.planRepo.SetActive(ctx, planID, newStatus); err != nil {
		s.LogError(ctx, err, "Failed to toggle installment status", slog.Int64("installment_id", planID))
		return nil, fmt.Errorf("failed to toggle installment status: %w", err)
	}

	plan.IsActive = newStatus
	s.LogInfo(ctx, "Installment status toggled", slog.Int64("installment_id", planID), slog.Bool("is_active", newStatus))
	return plan, nil
}

// DeleteInstallment removes the plan and, via cascade, its payment journal.
// Ledger transactions created by past payments are intentionally preserved as
// spending history.
func (s *installmentService) DeleteInstallment(ctx context.Context, planID int64) error {
	if err := s.planRepo.DeleteInstallment(ctx, planID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete installment plan", slog.Int64("installment_id", planID))
		}
		return err
	}
	s.LogInfo(ctx, "Installment plan deleted", slog.Int64("installment_id", planID))
	return nil
}

// NextUnpaidNumber returns the first installment number with no journal row,
// scanning 1..total so gaps left by out-of-order payments are filled first.
func (s *installmentService) NextUnpaidNumber(ctx context.Context, planID int64) (int, error) {
	plan, err := s.planRepo.FindInstallmentByID(ctx, planID)
	if err != nil {
		return 0, err
	}
	payments, err := s.planRepo.ListPayments(ctx, planID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.Int64("installment_id", planID))
		return 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return domain.NextUnpaidNumber(plan.TotalInstallments, payments), nil
}

// ListPayments returns the payment journal of a plan joined with the monetary
// fields of each payment's ledger transaction.
func (s *installmentService) ListPayments(ctx context.Context, planID int64) ([]domain.PaymentDetail, error) {
	if _, err := s.planRepo.FindInstallmentByID(ctx, planID); err != nil {
		return nil, err
	}
	details, err := s.planRepo.ListPaymentDetails(ctx, planID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment details", slog.Int64("installment_id", planID))
		return nil, fmt.Errorf("failed to list payment details: %w", err)
	}
	return details, nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/financeflow/backend/internal/apperrors"
	"github.com/financeflow/backend/internal/core/domain"
	portsrepo "github.com/financeflow/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const installmentColumns = "id, description, card_name, amount_per_installment, total_installments, installments_paid, start_date, is_active, currency"

type pgxInstallmentRepository struct {
	BaseRepository
}

// newPgxInstallmentRepository creates a new repository for installment plans
// and their payment journal.
func newPgxInstallmentRepository(pool *pgxpool.Pool) portsrepo.InstallmentRepository {
	return &pgxInstallmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// SaveInstallment inserts a plan and populates its id.
func (r *pgxInstallmentRepository) SaveInstallment(ctx context.Context, plan *domain.Installment) error {
	query := `
		INSERT INTO installments (description, card_name, amount_per_installment, total_installments, installments_paid, start_date, is_active, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		plan.Description,
		plan.CardName,
		plan.AmountPerInstallment,
		plan.TotalInstallments,
		plan.InstallmentsPaid,
		plan.StartDate,
		plan.IsActive,
		plan.Currency,
	).Scan(&plan.ID)
	if err != nil {
		return fmt.Errorf("failed to insert installment: %w", err)
	}
	return nil
}

// FindInstallmentByID retrieves a plan by id.
func (r *pgxInstallmentRepository) FindInstallmentByID(ctx context.Context, id int64) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE id = $1;`

	var plan domain.Installment
	err := r.Pool.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.Description,
		&plan.CardName,
		&plan.AmountPerInstallment,
		&plan.TotalInstallments,
		&plan.InstallmentsPaid,
		&plan.StartDate,
		&plan.IsActive,
		&plan.Currency,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment %d: %w", id, err)
	}
	return &plan, nil
}

// ListInstallments retrieves plans, optionally only active ones, newest start
// date first.
func (r *pgxInstallmentRepository) ListInstallments(ctx context.Context, activeOnly bool) ([]domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments`
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY start_date DESC, id DESC;"

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	defer rows.Close()

	plans := []domain.Installment{}
	for rows.Next() {
		var plan domain.Installment
		if err := rows.Scan(
			&plan.ID,
			&plan.Description,
			&plan.CardName,
			&plan.AmountPerInstallment,
			&plan.TotalInstallments,
			&plan.InstallmentsPaid,
			&plan.StartDate,
			&plan.IsActive,
			&plan.Currency,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installment rows: %w", err)
	}
	return plans, nil
}

// UpdatePaidCount overwrites the plan's paid count and active flag.
func (r *pgxInstallmentRepository) UpdatePaidCount(ctx context.Context, id int64, paid int, isActive bool) error {
	query := `UPDATE installments SET installments_paid = $1, is_active = $2 WHERE id = $3;`
	tag, err := r.Pool.Exec(ctx, query, paid, isActive, id)
	if err != nil {
		return fmt.Errorf("failed to update paid count for installment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetActive updates only the active flag.
func (r *pgxInstallmentRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE installments SET is_active = $1 WHERE id = $2;`, active, id)
	if err != nil {
		return fmt.Errorf("failed to set active flag for installment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteInstallment removes the plan; journal rows cascade via the foreign
// key, ledger transactions stay.
func (r *pgxInstallmentRepository) DeleteInstallment(ctx context.Context, id int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM installments WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete installment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPaymentByNumber retrieves the journal row for one installment number.
func (r *pgxInstallmentRepository) FindPaymentByNumber(ctx context.Context, installmentID int64, number int) (*domain.InstallmentPayment, error) {
	query := `
		SELECT id, installment_id, transaction_id, installment_number, payment_date, created_at
		FROM installment_payments
		WHERE installment_id = $1 AND installment_number = $2;
	`
	var p domain.InstallmentPayment
	err := r.Pool.QueryRow(ctx, query, installmentID, number).Scan(
		&p.ID,
		&p.InstallmentID,
		&p.TransactionID,
		&p.InstallmentNumber,
		&p.PaymentDate,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %d of installment %d: %w", number, installmentID, err)
	}
	return &p, nil
}

// ListPayments retrieves the journal of one plan ordered by installment number.
func (r *pgxInstallmentRepository) ListPayments(ctx context.Context, installmentID int64) ([]domain.InstallmentPayment, error) {
	query := `
		SELECT id, installment_id, transaction_id, installment_number, payment_date, created_at
		FROM installment_payments
		WHERE installment_id = $1
		ORDER BY installment_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, installmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for installment %d: %w", installmentID, err)
	}
	defer rows.Close()

	payments := []domain.InstallmentPayment{}
	for rows.Next() {
		var p domain.InstallmentPayment
		if err := rows.Scan(
			&p.ID,
			&p.InstallmentID,
			&p.TransactionID,
			&p.InstallmentNumber,
			&p.PaymentDate,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// ListPaymentDetails joins each journal row with the monetary fields of its
// ledger transaction.
func (r *pgxInstallmentRepository) ListPaymentDetails(ctx context.Context, installmentID int64) ([]domain.PaymentDetail, error) {
	query := `
		SELECT p.id, p.installment_id, p.transaction_id, p.installment_number, p.payment_date, p.created_at,
		       t.amount, t.currency, t.exchange_rate
		FROM installment_payments p
		JOIN transactions t ON t.id = p.transaction_id
		WHERE p.installment_id = $1
		ORDER BY p.installment_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, installmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment details for installment %d: %w", installmentID, err)
	}
	defer rows.Close()

	details := []domain.PaymentDetail{}
	for rows.Next() {
		var d domain.PaymentDetail
		if err := rows.Scan(
			&d.ID,
			&d.InstallmentID,
			&d.TransactionID,
			&d.InstallmentNumber,
			&d.PaymentDate,
			&d.CreatedAt,
			&d.Amount,
			&d.Currency,
			&d.ExchangeRate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment detail row: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment detail rows: %w", err)
	}
	return details, nil
}

// SavePayment inserts the ledger transaction and the journal row, then
// recounts the journal and stores the new paid count plus the derived active
// flag, all within one transaction. The unique (installment_id,
// installment_number) index turns a concurrent double-pay into
// apperrors.ErrDuplicate.
func (r *pgxInstallmentRepository) SavePayment(ctx context.Context, payment *domain.InstallmentPayment, txn *domain.Transaction) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction for installment payment: %w", err)
	}
	defer tx.Rollback(ctx)

	insertTxn := `
		INSERT INTO transactions (type, amount, currency, exchange_rate, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, created_at;
	`
	err = tx.QueryRow(ctx, insertTxn,
		txn.Type,
		txn.Amount,
		txn.Currency,
		txn.ExchangeRate,
		txn.Category,
		txn.Description,
		txn.Date,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert payment transaction: %w", err)
	}

	payment.TransactionID = txn.ID

	insertPayment := `
		INSERT INTO installment_payments (installment_id, transaction_id, installment_number, payment_date, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, created_at;
	`
	err = tx.QueryRow(ctx, insertPayment,
		payment.InstallmentID,
		payment.TransactionID,
		payment.InstallmentNumber,
		payment.PaymentDate,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrDuplicate
		}
		return 0, fmt.Errorf("failed to insert payment journal row: %w", err)
	}

	// Recount from the journal so the stored counter cannot drift.
	recount := `
		UPDATE installments i
		SET installments_paid = j.cnt,
		    is_active = j.cnt < i.total_installments
		FROM (
			SELECT COUNT(*) AS cnt FROM installment_payments WHERE installment_id = $1
		) j
		WHERE i.id = $1
		RETURNING i.installments_paid;
	`
	var newPaid int
	if err := tx.QueryRow(ctx, recount, payment.InstallmentID).Scan(&newPaid); err != nil {
		return 0, fmt.Errorf("failed to recount installment payments: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit installment payment: %w", err)
	}
	return newPaid, nil
}

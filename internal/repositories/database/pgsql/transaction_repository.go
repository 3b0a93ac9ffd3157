package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/financeflow/backend/internal/apperrors"
	"github.com/financeflow/backend/internal/core/domain"
	portsrepo "github.com/financeflow/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = "id, type, amount, currency, exchange_rate, category, description, date, created_at"

type pgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &pgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// SaveTransaction inserts a ledger entry and populates its id and created_at.
func (r *pgxTransactionRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (type, amount, currency, exchange_rate, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, created_at;
	`
	err := r.Pool.QueryRow(ctx, query,
		txn.Type,
		txn.Amount,
		txn.Currency,
		txn.ExchangeRate,
		txn.Category,
		txn.Description,
		txn.Date,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves a ledger entry by id.
func (r *pgxTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1;`

	var txn domain.Transaction
	err := r.Pool.QueryRow(ctx, query, id).Scan(
		&txn.ID,
		&txn.Type,
		&txn.Amount,
		&txn.Currency,
		&txn.ExchangeRate,
		&txn.Category,
		&txn.Description,
		&txn.Date,
		&txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", id, err)
	}
	return &txn, nil
}

// ListTransactions retrieves ledger entries for a year, optionally narrowed to
// an exact two-digit month and a category, ordered by date descending.
func (r *pgxTransactionRepository) ListTransactions(ctx context.Context, year int, month, category string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE to_char(date, 'YYYY') = $1`
	args := []any{strconv.Itoa(year)}

	if month != "" && month != "all" {
		args = append(args, month)
		query += fmt.Sprintf(" AND to_char(date, 'MM') = $%d", len(args))
	}
	if category != "" && category != "all" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY date DESC, created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListAllTransactions retrieves the entire ledger, oldest first.
func (r *pgxTransactionRepository) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY date, created_at;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// DeleteTransaction removes a ledger entry by id.
func (r *pgxTransactionRepository) DeleteTransaction(ctx context.Context, id int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumByType groups raw amounts by transaction type for a year/month window.
func (r *pgxTransactionRepository) SumByType(ctx context.Context, year int, month string) (map[domain.TransactionType]decimal.Decimal, error) {
	query := `SELECT type, SUM(amount) FROM transactions WHERE to_char(date, 'YYYY') = $1`
	args := []any{strconv.Itoa(year)}
	if month != "" && month != "all" {
		args = append(args, month)
		query += fmt.Sprintf(" AND to_char(date, 'MM') = $%d", len(args))
	}
	query += " GROUP BY type;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by type: %w", err)
	}
	defer rows.Close()

	sums := make(map[domain.TransactionType]decimal.Decimal)
	for rows.Next() {
		var txnType domain.TransactionType
		var total decimal.Decimal
		if err := rows.Scan(&txnType, &total); err != nil {
			return nil, fmt.Errorf("failed to scan type sum row: %w", err)
		}
		sums[txnType] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating type sum rows: %w", err)
	}
	return sums, nil
}

// SumByCategory groups raw non-INCOME amounts by category, descending.
func (r *pgxTransactionRepository) SumByCategory(ctx context.Context, year int, month string) ([]domain.CategoryTotal, error) {
	query := `SELECT category, SUM(amount) FROM transactions WHERE type != 'INCOME' AND to_char(date, 'YYYY') = $1`
	args := []any{strconv.Itoa(year)}
	if month != "" && month != "all" {
		args = append(args, month)
		query += fmt.Sprintf(" AND to_char(date, 'MM') = $%d", len(args))
	}
	query += " GROUP BY category ORDER BY SUM(amount) DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by category: %w", err)
	}
	defer rows.Close()

	totals := []domain.CategoryTotal{}
	for rows.Next() {
		var ct domain.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category sum row: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category sum rows: %w", err)
	}
	return totals, nil
}

// ListFixedExpensesByMonth retrieves FIXED_EXPENSE rows dated in the given
// month, ordered by description.
func (r *pgxTransactionRepository) ListFixedExpensesByMonth(ctx context.Context, year, month int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE type = 'FIXED_EXPENSE' AND to_char(date, 'YYYY-MM') = $1
		ORDER BY description ASC;
	`
	rows, err := r.Pool.Query(ctx, query, fmt.Sprintf("%04d-%02d", year, month))
	if err != nil {
		return nil, fmt.Errorf("failed to query fixed expenses: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// UpdateFixedExpense applies a partial edit to a FIXED_EXPENSE row.
func (r *pgxTransactionRepository) UpdateFixedExpense(ctx context.Context, id int64, patch domain.FixedExpensePatch) error {
	sets := []string{}
	args := []any{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.Amount != nil {
		appendSet("amount", *patch.Amount)
	}
	if patch.Currency != nil {
		appendSet("currency", *patch.Currency)
	}
	if patch.Category != nil {
		appendSet("category", *patch.Category)
	}
	if patch.ExchangeRate != nil {
		appendSet("exchange_rate", *patch.ExchangeRate)
	}
	if len(sets) == 0 {
		return fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE transactions SET %s WHERE id = $%d AND type = 'FIXED_EXPENSE';",
		strings.Join(sets, ", "), len(args),
	)

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update fixed expense %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanTransactions reads transaction rows into a slice.
func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	txns := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.Type,
			&txn.Amount,
			&txn.Currency,
			&txn.ExchangeRate,
			&txn.Category,
			&txn.Description,
			&txn.Date,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/financeflow/backend/internal/apperrors"
	"github.com/financeflow/backend/internal/core/domain"
	portsrepo "github.com/financeflow/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = "id, name, type, currency, icon, color, is_active"

type pgxSavingsRepository struct {
	BaseRepository
}

// newPgxSavingsRepository creates a new repository for savings accounts and
// movements.
func newPgxSavingsRepository(pool *pgxpool.Pool) portsrepo.SavingsRepository {
	return &pgxSavingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// SaveAccount inserts an account and populates its id.
func (r *pgxSavingsRepository) SaveAccount(ctx context.Context, account *domain.SavingsAccount) error {
	query := `
		INSERT INTO savings_accounts (name, type, currency, icon, color, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		account.Name,
		account.Type,
		account.Currency,
		account.Icon,
		account.Color,
		account.IsActive,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to insert savings account: %w", err)
	}
	return nil
}

// FindAccountByID retrieves an account by id, active or not.
func (r *pgxSavingsRepository) FindAccountByID(ctx context.Context, id int64) (*domain.SavingsAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM savings_accounts WHERE id = $1;`

	var account domain.SavingsAccount
	err := r.Pool.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Name,
		&account.Type,
		&account.Currency,
		&account.Icon,
		&account.Color,
		&account.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find savings account %d: %w", id, err)
	}
	return &account, nil
}

// ListAccounts retrieves the active accounts ordered by name.
func (r *pgxSavingsRepository) ListAccounts(ctx context.Context) ([]domain.SavingsAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM savings_accounts WHERE is_active = TRUE ORDER BY name ASC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.SavingsAccount{}
	for rows.Next() {
		var account domain.SavingsAccount
		if err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Type,
			&account.Currency,
			&account.Icon,
			&account.Color,
			&account.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan savings account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies a partial edit to an account.
func (r *pgxSavingsRepository) UpdateAccount(ctx context.Context, id int64, patch domain.AccountPatch) error {
	sets := []string{}
	args := []any{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.Type != nil {
		appendSet("type", *patch.Type)
	}
	if patch.Currency != nil {
		appendSet("currency", *patch.Currency)
	}
	if patch.Icon != nil {
		appendSet("icon", *patch.Icon)
	}
	if patch.Color != nil {
		appendSet("color", *patch.Color)
	}
	if len(sets) == 0 {
		return fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE savings_accounts SET %s WHERE id = $%d;", strings.Join(sets, ", "), len(args))

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update savings account %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount soft-deletes an account.
func (r *pgxSavingsRepository) DeactivateAccount(ctx context.Context, id int64) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE savings_accounts SET is_active = FALSE WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate savings account %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveMovement inserts the paired ledger transaction and the movement within
// one transaction, so neither row exists without the other.
func (r *pgxSavingsRepository) SaveMovement(ctx context.Context, mov *domain.SavingsMovement, txn *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for savings movement: %w", err)
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
		return fmt.Errorf("failed to insert movement transaction: %w", err)
	}

	insertMov := `
		INSERT INTO savings_movements (account_id, transaction_id, type, amount, currency, exchange_rate, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		RETURNING id, created_at;
	`
	err = tx.QueryRow(ctx, insertMov,
		mov.AccountID,
		txn.ID,
		mov.Type,
		mov.Amount,
		mov.Currency,
		mov.ExchangeRate,
		mov.Description,
		mov.Date,
	).Scan(&mov.ID, &mov.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert savings movement: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit savings movement: %w", err)
	}
	return nil
}

// ListMovements retrieves movements joined with account display fields,
// newest first, optionally filtered by account and limited.
func (r *pgxSavingsRepository) ListMovements(ctx context.Context, accountID *int64, limit int) ([]domain.MovementDetail, error) {
	query := `
		SELECT m.id, m.account_id, m.type, m.amount, m.currency, m.exchange_rate, m.description, m.date, m.created_at,
		       a.name, a.color
		FROM savings_movements m
		JOIN savings_accounts a ON a.id = m.account_id
	`
	args := []any{}
	if accountID != nil {
		args = append(args, *accountID)
		query += fmt.Sprintf(" WHERE m.account_id = $%d", len(args))
	}
	query += " ORDER BY m.date DESC, m.created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	query += ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings movements: %w", err)
	}
	defer rows.Close()

	details := []domain.MovementDetail{}
	for rows.Next() {
		var d domain.MovementDetail
		if err := rows.Scan(
			&d.ID,
			&d.AccountID,
			&d.Type,
			&d.Amount,
			&d.Currency,
			&d.ExchangeRate,
			&d.Description,
			&d.Date,
			&d.CreatedAt,
			&d.AccountName,
			&d.AccountColor,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movement detail row: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement detail rows: %w", err)
	}
	return details, nil
}

// ListAllMovements retrieves every movement, used by the available-to-save
// derivation.
func (r *pgxSavingsRepository) ListAllMovements(ctx context.Context) ([]domain.SavingsMovement, error) {
	query := `
		SELECT id, account_id, type, amount, currency, exchange_rate, description, date, created_at
		FROM savings_movements
		ORDER BY date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all savings movements: %w", err)
	}
	defer rows.Close()

	movements := []domain.SavingsMovement{}
	for rows.Next() {
		var mov domain.SavingsMovement
		if err := rows.Scan(
			&mov.ID,
			&mov.AccountID,
			&mov.Type,
			&mov.Amount,
			&mov.Currency,
			&mov.ExchangeRate,
			&mov.Description,
			&mov.Date,
			&mov.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, mov)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}
	return movements, nil
}

// DeleteMovement removes a movement; the paired ledger transaction stays.
func (r *pgxSavingsRepository) DeleteMovement(ctx context.Context, id int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM savings_movements WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete savings movement %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AccountBalances returns every active account with deposits minus
// withdrawals in the account's own currency.
func (r *pgxSavingsRepository) AccountBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	query := `
		SELECT ` + accountColumns + `,
		       COALESCE((
		           SELECT SUM(CASE WHEN m.type = 'DEPOSIT' THEN m.amount ELSE -m.amount END)
		           FROM savings_movements m
		           WHERE m.account_id = savings_accounts.id
		       ), 0) AS balance
		FROM savings_accounts
		WHERE is_active = TRUE
		ORDER BY name ASC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account balances: %w", err)
	}
	defer rows.Close()

	balances := []domain.AccountBalance{}
	for rows.Next() {
		var b domain.AccountBalance
		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Type,
			&b.Currency,
			&b.Icon,
			&b.Color,
			&b.IsActive,
			&b.Balance,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account balance row: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account balance rows: %w", err)
	}
	return balances, nil
}

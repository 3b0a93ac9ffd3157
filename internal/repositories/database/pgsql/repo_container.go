package pgsql

import (
	portsrepo "github.com/financeflow/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository onto one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(pool),
		InstallmentRepo: newPgxInstallmentRepository(pool),
		SavingsRepo:     newPgxSavingsRepository(pool),
	}
}

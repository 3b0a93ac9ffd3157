package services

import (
	portsrepo "github.com/financeflow/backend/internal/core/ports/repositories"
	portssvc "github.com/financeflow/backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider, rates portssvc.RateLookupSvc) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(repos.TransactionRepo),
		Installment: NewInstallmentService(repos.InstallmentRepo),
		Replicator:  NewReplicatorService(repos.TransactionRepo),
		Reporting:   NewReportingService(repos.TransactionRepo, repos.InstallmentRepo),
		Savings:     NewSavingsService(repos.SavingsRepo, repos.TransactionRepo),
		Rates:       rates,
	}
}

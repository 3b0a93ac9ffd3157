package domain_test

import (
	"testing"

	"github.com/financeflow/backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestMovementType_TransactionType(t *testing.T) {
	assert.Equal(t, domain.TypeSavingDeposit, domain.Deposit.TransactionType())
	assert.Equal(t, domain.TypeSavingWithdrawal, domain.Withdrawal.TransactionType())
}

func TestDefaultMovementDescription(t *testing.T) {
	assert.Equal(t, "Ahorro → Banco", domain.DefaultMovementDescription(domain.Deposit, "Banco"))
	assert.Equal(t, "Retiro ← Banco", domain.DefaultMovementDescription(domain.Withdrawal, "Banco"))
}

func TestTransactionType_IsValid(t *testing.T) {
	valid := []domain.TransactionType{
		domain.TypeIncome,
		domain.TypeFixedExpense,
		domain.TypeExpense,
		domain.TypeInstallment,
		domain.TypeSavingDeposit,
		domain.TypeSavingWithdrawal,
	}
	for _, txnType := range valid {
		assert.True(t, txnType.IsValid(), "expected %s to be valid", txnType)
	}

	// The legacy split types are migration-only and rejected at the API.
	assert.False(t, domain.LegacyMajorExpense.IsValid())
	assert.False(t, domain.LegacyMicroExpense.IsValid())
	assert.False(t, domain.TransactionType("TRANSFER").IsValid())
}

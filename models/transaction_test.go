package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeValid(t *testing.T) {
	for _, kind := range []TransactionType{
		TransactionTypeDeposit,
		TransactionTypeWithdraw,
		TransactionTypeTransfer,
		TransactionTypeLoanPayment,
	} {
		assert.True(t, kind.Valid(), string(kind))
	}

	assert.False(t, TransactionType("refund").Valid())
	assert.False(t, TransactionType("").Valid())
}

func TestLoanTotalDue(t *testing.T) {
	loan := Loan{Amount: 1000, InterestRate: 10}
	assert.InDelta(t, 1100.0, loan.TotalDue(), 0.0001)

	free := Loan{Amount: 500, InterestRate: 0}
	assert.Equal(t, 500.0, free.TotalDue())
}

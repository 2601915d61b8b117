package services

import (
	"testing"
	"time"

	"github.com/peklos/nextbank/models"
	"github.com/peklos/nextbank/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoanService(f *fakeLedger) *LoanService {
	return NewLoanService(f, nil, nil, utils.NewMetrics(), logrus.New())
}

func TestApplyLoan(t *testing.T) {
	f := newFakeLedger()
	client := f.addClient("ivan@example.com", &models.PersonalInfo{PassportNumber: "4510123456"})

	svc := newTestLoanService(f)

	loan, err := svc.Apply(client.ID, LoanApplicationDTO{
		Amount:       100000,
		InterestRate: 15,
		TermMonths:   12,
	})
	require.NoError(t, err)

	assert.Equal(t, 100000.0, loan.Amount)
	assert.Equal(t, 15.0, loan.InterestRate)
	assert.False(t, loan.IsPaid)

	// Кредит сохранён и создан процесс оформления
	require.Contains(t, f.loans, loan.ID)
	require.Len(t, f.processes, 1)
	assert.Equal(t, models.ProcessTypeLoanApplication, f.processes[0].ProcessType)
	assert.Equal(t, client.ID, f.processes[0].ClientID)
}

func TestApplyLoanWithoutPersonalInfo(t *testing.T) {
	f := newFakeLedger()
	client := f.addClient("ivan@example.com", nil)

	svc := newTestLoanService(f)

	_, err := svc.Apply(client.ID, LoanApplicationDTO{
		Amount:       100000,
		InterestRate: 15,
		TermMonths:   12,
	})
	assert.ErrorIs(t, err, ErrPersonalInfoRequired)

	assert.Empty(t, f.loans)
	assert.Empty(t, f.processes)
}

func TestApplyLoanClientNotFound(t *testing.T) {
	f := newFakeLedger()
	svc := newTestLoanService(f)

	_, err := svc.Apply(999, LoanApplicationDTO{
		Amount:       100000,
		InterestRate: 15,
		TermMonths:   12,
	})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestPayLoanFull(t *testing.T) {
	f := newFakeLedger()
	client := f.addClient("ivan@example.com", nil)
	account := f.addAccount(client.ID, 2000)
	card := f.addCard(client.ID, account.ID, "4000000000000001")
	loan := f.addLoan(client.ID, 1000, 10, 12)

	svc := newTestLoanService(f)

	// Полная сумма к оплате: 1000 * 1.10 = 1100
	result, err := svc.Pay(client.ID, loan.ID, LoanPaymentDTO{CardID: card.ID, PaymentAmount: 1100})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.RemainingAmount)
	assert.InDelta(t, 1100.0, result.TotalPaid, 0.001)
	assert.Equal(t, 900.0, result.CardBalance)
	assert.True(t, f.loans[loan.ID].IsPaid)

	require.Len(t, f.transactions, 1)
	tx := f.transactions[0]
	assert.Equal(t, models.TransactionTypeLoanPayment, tx.TransactionType)
	require.NotNil(t, tx.FromCardID)
	assert.Equal(t, card.ID, *tx.FromCardID)
	require.NotNil(t, tx.LoanID)
	assert.Equal(t, loan.ID, *tx.LoanID)

	// Оплаченный кредит — терминальное состояние
	_, err = svc.Pay(client.ID, loan.ID, LoanPaymentDTO{CardID: card.ID, PaymentAmount: 100})
	assert.ErrorIs(t, err, ErrLoanAlreadyPaid)
}

func TestPayLoanPartial(t *testing.T) {
	f := newFakeLedger()
	client := f.addClient("ivan@example.com", nil)
	account := f.addAccount(client.ID, 2000)
	card := f.addCard(client.ID, account.ID, "4000000000000001")
	loan := f.addLoan(client.ID, 1000, 10, 12)

	svc := newTestLoanService(f)

	result, err := svc.Pay(client.ID, loan.ID, LoanPaymentDTO{CardID: card.ID, PaymentAmount: 600})
	require.NoError(t, err)

	assert.InDelta(t, 500.0, result.RemainingAmount, 0.001)
	assert.False(t, f.loans[loan.ID].IsPaid)
	assert.Equal(t, 1400.0, f.balance(account.ID))

	// Платёж сверх остатка отклоняется
	_, err = svc.Pay(client.ID, loan.ID, LoanPaymentDTO{CardID: card.ID, PaymentAmount: 600})
	assert.ErrorIs(t, err, ErrExceedsRemaining)
	assert.Equal(t, 1400.0, f.balance(account.ID))
}

func TestPayLoanInsufficientFunds(t *testing.T) {
	f := newFakeLedger()
	client := f.addClient("ivan@example.com", nil)
	account := f.addAccount(client.ID, 50)
	card := f.addCard(client.ID, account.ID, "4000000000000001")
	loan := f.addLoan(client.ID, 1000, 10, 12)

	svc := newTestLoanService(f)

	_, err := svc.Pay(client.ID, loan.ID, LoanPaymentDTO{CardID: card.ID, PaymentAmount: 500})
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, 50.0, f.balance(account.ID))
	assert.Equal(t, 0.0, f.loans[loan.ID].PaidAmount)
	assert.Empty(t, f.transactions)
}

func TestPayLoanNotFound(t *testing.T) {
	f := newFakeLedger()
	client := f.addClient("ivan@example.com", nil)
	account := f.addAccount(client.ID, 2000)
	card := f.addCard(client.ID, account.ID, "4000000000000001")

	svc := newTestLoanService(f)

	_, err := svc.Pay(client.ID, 999, LoanPaymentDTO{CardID: card.ID, PaymentAmount: 100})
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestSchedule(t *testing.T) {
	f := newFakeLedger()
	client := f.addClient("ivan@example.com", nil)
	loan := f.addLoan(client.ID, 1200, 12, 12)

	svc := newTestLoanService(f)

	schedule, err := svc.Schedule(client.ID, loan.ID)
	require.NoError(t, err)

	require.Len(t, schedule.Schedule, 12)
	assert.Equal(t, loan.ID, schedule.LoanID)
	assert.Greater(t, schedule.MonthlyPayment, 100.0)
	assert.Greater(t, schedule.TotalInterest, 0.0)

	// Остаток в последнем месяце равен нулю
	last := schedule.Schedule[11]
	assert.Equal(t, 0.0, last.RemainingBalance)

	// Сумма платежей основного долга сходится к телу кредита
	var principal float64
	for _, entry := range schedule.Schedule {
		principal += entry.PrincipalPayment
	}
	assert.InDelta(t, 1200.0, principal, 12*0.01)

	// Проценты убывают по мере погашения
	assert.Greater(t, schedule.Schedule[0].InterestPayment, last.InterestPayment)
}

func TestBuildScheduleZeroRate(t *testing.T) {
	issuedAt := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	entries, monthly := buildSchedule(1200, 0, 12, issuedAt)

	require.Len(t, entries, 12)
	assert.Equal(t, 100.0, monthly)

	for i, entry := range entries {
		assert.Equal(t, 100.0, entry.MonthlyPayment)
		assert.Equal(t, 0.0, entry.InterestPayment)
		// Даты платежей идут с шагом 30 дней от даты выдачи
		assert.Equal(t, issuedAt.Add(time.Duration(30*(i+1))*24*time.Hour), entry.PaymentDate)
	}
	assert.Equal(t, 0.0, entries[11].RemainingBalance)
}

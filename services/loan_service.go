package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/peklos/nextbank/models"
	"github.com/peklos/nextbank/storage"
	"github.com/peklos/nextbank/utils"
	"github.com/sirupsen/logrus"
)

// paidEpsilon — погрешность, при которой остаток по кредиту считается нулевым
const paidEpsilon = 0.01

// LoanApplicationDTO представляет данные заявки на кредит
type LoanApplicationDTO struct {
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0"`
	TermMonths   int     `json:"term_months" validate:"required,gt=0"`
}

// LoanPaymentDTO представляет данные платежа по кредиту
type LoanPaymentDTO struct {
	CardID        uint    `json:"card_id" validate:"required"`
	PaymentAmount float64 `json:"payment_amount" validate:"required,gt=0"`
}

// PaymentResult представляет результат платежа по кредиту. Все суммы
// согласованы между собой: RemainingAmount = TotalDue - TotalPaid без
// накопления ошибок округления.
type PaymentResult struct {
	Message         string  `json:"message"`
	PaidAmount      float64 `json:"paid_amount"`
	TotalPaid       float64 `json:"total_paid"`
	RemainingAmount float64 `json:"remaining_amount"`
	CardBalance     float64 `json:"card_balance"`
}

// ScheduleEntry представляет один месяц графика платежей
type ScheduleEntry struct {
	Month            int       `json:"month"`
	PaymentDate      time.Time `json:"payment_date"`
	MonthlyPayment   float64   `json:"monthly_payment"`
	PrincipalPayment float64   `json:"principal_payment"`
	InterestPayment  float64   `json:"interest_payment"`
	RemainingBalance float64   `json:"remaining_balance"`
}

// ScheduleResponse представляет график платежей по кредиту
type ScheduleResponse struct {
	LoanID         uint            `json:"loan_id"`
	TotalAmount    float64         `json:"total_amount"`
	MonthlyPayment float64         `json:"monthly_payment"`
	TotalInterest  float64         `json:"total_interest"`
	Schedule       []ScheduleEntry `json:"schedule"`
}

// LoanService выполняет операции с кредитами: подачу заявки, платежи и
// расчёт аннуитетного графика. Платёж списывает средства с карты клиента и
// фиксирует запись loan_payment в той же единице работы.
type LoanService struct {
	ledger  storage.Ledger
	keyRate *KeyRateService
	email   *EmailService
	metrics *utils.Metrics
	log     *logrus.Logger
}

// NewLoanService создает новый экземпляр LoanService
func NewLoanService(ledger storage.Ledger, keyRate *KeyRateService, email *EmailService, metrics *utils.Metrics, log *logrus.Logger) *LoanService {
	return &LoanService{
		ledger:  ledger,
		keyRate: keyRate,
		email:   email,
		metrics: metrics,
		log:     log,
	}
}

// Apply создает кредит и процесс его оформления. Если клиент не указал
// ставку, используется ключевая ставка ЦБ плюс маржа банка.
func (s *LoanService) Apply(clientID uint, dto LoanApplicationDTO) (*models.Loan, error) {
	if dto.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	rate := dto.InterestRate
	if rate <= 0 {
		cbRate, err := s.keyRate.CurrentRate()
		if err != nil {
			return nil, fmt.Errorf("ошибка при получении ставки центрального банка: %w", err)
		}
		rate = cbRate + s.keyRate.Margin()
	}

	loan := &models.Loan{
		Amount:       dto.Amount,
		InterestRate: rate,
		TermMonths:   dto.TermMonths,
		IssuedAt:     time.Now(),
		IsPaid:       false,
		ClientID:     clientID,
	}

	err := s.ledger.WithinTransaction(func(tx storage.Tx) error {
		client, err := tx.ClientByID(clientID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrClientNotFound
			}
			return err
		}
		if client.PersonalInfo == nil {
			return ErrPersonalInfoRequired
		}

		if err := tx.CreateLoan(loan); err != nil {
			return fmt.Errorf("ошибка при создании кредита: %w", err)
		}

		// Создаем процесс оформления кредита
		return tx.CreateProcess(&models.Process{
			ProcessType: models.ProcessTypeLoanApplication,
			Status:      "in_progress",
			ClientID:    clientID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Создан кредит #%d для клиента %d на сумму %.2f под %.2f%%", loan.ID, clientID, loan.Amount, loan.InterestRate)
	return loan, nil
}

// GetLoans возвращает все кредиты клиента
func (s *LoanService) GetLoans(clientID uint) ([]models.Loan, error) {
	return s.ledger.LoansOfClient(clientID)
}

// GetLoan возвращает кредит клиента по ID
func (s *LoanService) GetLoan(clientID, loanID uint) (*models.Loan, error) {
	loan, err := s.ledger.LoanOfClient(loanID, clientID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// Pay проводит платёж по кредиту с карты клиента. Кредит можно оплатить
// полностью или частично; платёж сверх остатка отклоняется. Когда остаток
// опускается ниже погрешности, кредит помечается оплаченным — это
// терминальное состояние, дальнейшие платежи не принимаются.
func (s *LoanService) Pay(clientID, loanID uint, dto LoanPaymentDTO) (*PaymentResult, error) {
	if dto.PaymentAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	var result PaymentResult
	var card *models.Card
	var paidOff bool

	err := s.ledger.WithinTransaction(func(tx storage.Tx) error {
		loan, err := tx.LoanOfClient(loanID, clientID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrLoanNotFound
			}
			return err
		}

		if loan.IsPaid {
			return ErrLoanAlreadyPaid
		}

		card, err = tx.ActiveCardOfClient(dto.CardID, clientID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		totalDue := loan.TotalDue()
		remaining := totalDue - loan.PaidAmount

		if dto.PaymentAmount > remaining {
			return fmt.Errorf("%w (%.2f ₽)", ErrExceedsRemaining, remaining)
		}

		if card.Account.Balance < dto.PaymentAmount {
			return fmt.Errorf("%w на карте", ErrInsufficientFunds)
		}

		// Списываем средства и обновляем оплаченную сумму
		card.Account.Balance -= dto.PaymentAmount
		loan.PaidAmount += dto.PaymentAmount

		newRemaining := totalDue - loan.PaidAmount

		var message string
		if newRemaining <= paidEpsilon {
			loan.IsPaid = true
			newRemaining = 0
			paidOff = true
			message = "Кредит полностью оплачен! Списано " + formatRub(dto.PaymentAmount)
		} else {
			message = "Частичная оплата кредита. Списано " + formatRub(dto.PaymentAmount)
		}

		if err := tx.SaveAccount(&card.Account); err != nil {
			return fmt.Errorf("ошибка при обновлении баланса: %w", err)
		}
		if err := tx.SaveLoan(loan); err != nil {
			return fmt.Errorf("ошибка при обновлении кредита: %w", err)
		}

		if err := recordTransaction(tx, clientID, models.TransactionTypeLoanPayment, dto.PaymentAmount,
			fmt.Sprintf("Платёж по кредиту #%d", loan.ID), &card.ID, nil, &loan.ID); err != nil {
			return err
		}

		result = PaymentResult{
			Message:         message,
			PaidAmount:      dto.PaymentAmount,
			TotalPaid:       loan.PaidAmount,
			RemainingAmount: newRemaining,
			CardBalance:     card.Account.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOperation(models.TransactionTypeLoanPayment, dto.PaymentAmount)

	if paidOff && s.email != nil && card != nil && card.Client.Email != "" {
		if err := s.email.SendLoanPaidNotification(card.Client.Email, loanID); err != nil {
			s.log.Warnf("Ошибка при отправке уведомления о погашении кредита: %v", err)
		}
	}

	return &result, nil
}

// Schedule возвращает график платежей по кредиту (аннуитетный метод).
// Операция только читает состояние, ничего не изменяя.
func (s *LoanService) Schedule(clientID, loanID uint) (*ScheduleResponse, error) {
	loan, err := s.ledger.LoanOfClient(loanID, clientID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	entries, monthlyPayment := buildSchedule(loan.Amount, loan.InterestRate, loan.TermMonths, loan.IssuedAt)

	return &ScheduleResponse{
		LoanID:         loan.ID,
		TotalAmount:    round2(loan.Amount),
		MonthlyPayment: round2(monthlyPayment),
		TotalInterest:  round2(monthlyPayment*float64(loan.TermMonths) - loan.Amount),
		Schedule:       entries,
	}, nil
}

// buildSchedule рассчитывает аннуитетный график. Внутренний остаток ведётся
// без округления, чтобы ошибка не накапливалась по месяцам; суммы в записях
// округляются до копеек только для отображения. Дата платежа отсчитывается
// по упрощённому 30-дневному месяцу от даты выдачи.
func buildSchedule(amount, annualRate float64, months int, issuedAt time.Time) ([]ScheduleEntry, float64) {
	monthlyRate := annualRate / 100 / 12

	var monthlyPayment float64
	if monthlyRate > 0 {
		monthlyPayment = amount * (monthlyRate * math.Pow(1+monthlyRate, float64(months))) /
			(math.Pow(1+monthlyRate, float64(months)) - 1)
	} else {
		monthlyPayment = amount / float64(months)
	}

	entries := make([]ScheduleEntry, 0, months)
	remaining := amount

	for month := 1; month <= months; month++ {
		interest := remaining * monthlyRate
		principal := monthlyPayment - interest
		remaining -= principal

		entries = append(entries, ScheduleEntry{
			Month:            month,
			PaymentDate:      issuedAt.Add(time.Duration(30*month) * 24 * time.Hour),
			MonthlyPayment:   round2(monthlyPayment),
			PrincipalPayment: round2(principal),
			InterestPayment:  round2(interest),
			RemainingBalance: round2(math.Max(0, remaining)),
		})
	}

	return entries, monthlyPayment
}

// round2 округляет сумму до двух знаков
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package services

import (
	"errors"
	"fmt"

	"github.com/peklos/nextbank/models"
	"github.com/peklos/nextbank/storage"
	"github.com/peklos/nextbank/utils"
	"github.com/sirupsen/logrus"
)

// OperationResult представляет результат денежной операции по карте
type OperationResult struct {
	Message    string  `json:"message"`
	NewBalance float64 `json:"new_balance"`
}

// MoneyService выполняет денежные операции по картам: пополнение, снятие и
// перевод. Каждая операция — одна атомарная единица работы: мутации балансов
// и записи транзакций фиксируются вместе или не фиксируются вовсе.
type MoneyService struct {
	ledger  storage.Ledger
	email   *EmailService
	metrics *utils.Metrics
	log     *logrus.Logger
}

// NewMoneyService создает новый экземпляр MoneyService
func NewMoneyService(ledger storage.Ledger, email *EmailService, metrics *utils.Metrics, log *logrus.Logger) *MoneyService {
	return &MoneyService{
		ledger:  ledger,
		email:   email,
		metrics: metrics,
		log:     log,
	}
}

// Deposit пополняет счёт карты на указанную сумму
func (s *MoneyService) Deposit(clientID, cardID uint, amount float64) (*OperationResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var result OperationResult
	var card *models.Card

	err := s.ledger.WithinTransaction(func(tx storage.Tx) error {
		var err error
		card, err = tx.ActiveCardOfClient(cardID, clientID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		// Зачисляем средства на счёт карты
		card.Account.Balance += amount
		if err := tx.SaveAccount(&card.Account); err != nil {
			return fmt.Errorf("ошибка при обновлении баланса: %w", err)
		}

		if err := recordTransaction(tx, clientID, models.TransactionTypeDeposit, amount,
			"Пополнение карты •••• "+maskedCard(card.CardNumber), nil, &card.ID, nil); err != nil {
			return err
		}

		result = OperationResult{
			Message:    "Баланс карты пополнен на " + formatRub(amount),
			NewBalance: card.Account.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOperation(models.TransactionTypeDeposit, amount)
	s.notify(card, amount, "Пополнение")

	return &result, nil
}

// Withdraw снимает средства со счёта карты
func (s *MoneyService) Withdraw(clientID, cardID uint, amount float64) (*OperationResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var result OperationResult
	var card *models.Card

	err := s.ledger.WithinTransaction(func(tx storage.Tx) error {
		var err error
		card, err = tx.ActiveCardOfClient(cardID, clientID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		// Проверяем достаточность средств до любых мутаций
		if card.Account.Balance < amount {
			return ErrInsufficientFunds
		}

		card.Account.Balance -= amount
		if err := tx.SaveAccount(&card.Account); err != nil {
			return fmt.Errorf("ошибка при обновлении баланса: %w", err)
		}

		if err := recordTransaction(tx, clientID, models.TransactionTypeWithdraw, amount,
			"Снятие с карты •••• "+maskedCard(card.CardNumber), &card.ID, nil, nil); err != nil {
			return err
		}

		result = OperationResult{
			Message:    "С карты списано " + formatRub(amount),
			NewBalance: card.Account.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOperation(models.TransactionTypeWithdraw, amount)
	s.notify(card, amount, "Снятие")

	return &result, nil
}

// Transfer переводит средства с карты клиента на карту получателя по её
// номеру. Для перевода между клиентами создаются две записи: transfer у
// отправителя и deposit у получателя. Все четыре изменения состояния (два
// баланса, одна-две записи) фиксируются атомарно.
func (s *MoneyService) Transfer(clientID, fromCardID uint, toCardNumber string, amount float64) (*OperationResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var result OperationResult
	var fromCard *models.Card

	err := s.ledger.WithinTransaction(func(tx storage.Tx) error {
		var err error
		fromCard, err = tx.ActiveCardOfClient(fromCardID, clientID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("карта отправителя: %w", ErrCardNotFound)
			}
			return err
		}

		toCard, err := tx.ActiveCardByNumber(toCardNumber)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("карта получателя: %w", ErrCardNotFound)
			}
			return err
		}

		if fromCard.Account.Balance < amount {
			return ErrInsufficientFunds
		}

		if fromCard.AccountID == toCard.AccountID {
			// Обе карты привязаны к одному счёту: списание и зачисление
			// взаимно погашаются, баланс не меняется
			result = OperationResult{
				Message:    "Переведено " + formatRub(amount) + " на карту " + toCardNumber,
				NewBalance: fromCard.Account.Balance,
			}
			return recordTransaction(tx, clientID, models.TransactionTypeTransfer, amount,
				"Перевод на карту •••• "+maskedCard(toCardNumber), &fromCard.ID, &toCard.ID, nil)
		}

		fromCard.Account.Balance -= amount
		toCard.Account.Balance += amount

		if err := tx.SaveAccount(&fromCard.Account); err != nil {
			return fmt.Errorf("ошибка при обновлении баланса отправителя: %w", err)
		}
		if err := tx.SaveAccount(&toCard.Account); err != nil {
			return fmt.Errorf("ошибка при обновлении баланса получателя: %w", err)
		}

		if err := recordTransaction(tx, clientID, models.TransactionTypeTransfer, amount,
			"Перевод на карту •••• "+maskedCard(toCardNumber), &fromCard.ID, &toCard.ID, nil); err != nil {
			return err
		}

		// Запись для получателя, если это другой клиент
		if toCard.ClientID != clientID {
			if err := recordTransaction(tx, toCard.ClientID, models.TransactionTypeDeposit, amount,
				"Получен перевод от карты •••• "+maskedCard(fromCard.CardNumber), &fromCard.ID, &toCard.ID, nil); err != nil {
				return err
			}
		}

		result = OperationResult{
			Message:    "Переведено " + formatRub(amount) + " на карту " + toCardNumber,
			NewBalance: fromCard.Account.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOperation(models.TransactionTypeTransfer, amount)
	s.notify(fromCard, amount, "Перевод")

	return &result, nil
}

// notify отправляет уведомление о проведённой операции. Ошибка отправки
// логируется и не влияет на результат: операция уже зафиксирована.
func (s *MoneyService) notify(card *models.Card, amount float64, operation string) {
	if s.email == nil || card == nil || card.Client.Email == "" {
		return
	}
	if err := s.email.SendTransactionNotification(card.Client.Email, card.CardNumber, amount, operation); err != nil {
		s.log.Warnf("Ошибка отправки уведомления: %v", err)
	}
}

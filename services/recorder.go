package services

import (
	"fmt"

	"github.com/peklos/nextbank/models"
	"github.com/peklos/nextbank/storage"
)

// recordTransaction добавляет неизменяемую запись о денежной операции в ту же
// единицу работы, что и мутация баланса, которую она документирует. Бизнес-
// правила здесь не проверяются — вызывающий обязан провалидировать операцию
// до записи. Ошибка хранилища откатывает всю единицу работы.
func recordTransaction(
	tx storage.Tx,
	clientID uint,
	kind models.TransactionType,
	amount float64,
	description string,
	fromCardID, toCardID, loanID *uint,
) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !kind.Valid() {
		return fmt.Errorf("неизвестный тип транзакции: %s", kind)
	}

	return tx.CreateTransaction(&models.Transaction{
		ClientID:        clientID,
		TransactionType: kind,
		Amount:          amount,
		Description:     description,
		Status:          models.TransactionStatusCompleted,
		FromCardID:      fromCardID,
		ToCardID:        toCardID,
		LoanID:          loanID,
	})
}

// maskedCard возвращает последние 4 цифры номера карты для описаний операций
func maskedCard(number string) string {
	if len(number) < 4 {
		return number
	}
	return number[len(number)-4:]
}

// formatRub форматирует сумму для сообщений пользователю
func formatRub(amount float64) string {
	return fmt.Sprintf("%.2f ₽", amount)
}

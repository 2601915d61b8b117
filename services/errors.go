package services

import (
	"errors"
)

// Ошибки бизнес-правил денежных операций. Нарушение обнаруживается до любых
// мутаций: если операция вернула одну из этих ошибок, состояние не изменилось.
var (
	// ErrCardNotFound — карта не существует, не принадлежит клиенту или
	// неактивна. Случаи не различаются намеренно.
	ErrCardNotFound = errors.New("карта не найдена или неактивна")
	// ErrAccountNotFound — счёт не существует или не принадлежит клиенту
	ErrAccountNotFound = errors.New("счёт не найден")
	// ErrLoanNotFound — кредит не существует или не принадлежит клиенту
	ErrLoanNotFound = errors.New("кредит не найден")
	// ErrInvalidAmount — сумма операции не положительная
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrInsufficientFunds — на счёте недостаточно средств
	ErrInsufficientFunds = errors.New("недостаточно средств")
	// ErrLoanAlreadyPaid — кредит уже полностью оплачен
	ErrLoanAlreadyPaid = errors.New("кредит уже полностью оплачен")
	// ErrExceedsRemaining — платёж превышает остаток по кредиту
	ErrExceedsRemaining = errors.New("сумма платежа превышает остаток по кредиту")
	// ErrClientNotFound — клиент не существует
	ErrClientNotFound = errors.New("клиент не найден")
	// ErrPersonalInfoRequired — для операции нужны персональные данные клиента
	ErrPersonalInfoRequired = errors.New("для подачи заявки на кредит необходимо заполнить персональные данные")
)

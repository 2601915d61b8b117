package storage

import (
	"errors"

	"github.com/peklos/nextbank/models"
)

// ErrNotFound возвращается, когда инструмент не существует, не принадлежит
// клиенту или неактивен. Эти случаи намеренно не различаются, чтобы не
// раскрывать посторонним, какие идентификаторы существуют.
var ErrNotFound = errors.New("запись не найдена")

// Tx описывает операции хранилища, доступные внутри одной единицы работы.
// Денежные движки зависят только от этого интерфейса, а не от конкретной ORM.
type Tx interface {
	// ActiveCardOfClient возвращает активную карту клиента вместе со счётом.
	ActiveCardOfClient(cardID, clientID uint) (*models.Card, error)
	// ActiveCardByNumber возвращает активную карту по номеру (любой владелец).
	ActiveCardByNumber(number string) (*models.Card, error)
	// LoanOfClient возвращает кредит клиента.
	LoanOfClient(loanID, clientID uint) (*models.Loan, error)
	// LoansOfClient возвращает все кредиты клиента.
	LoansOfClient(clientID uint) ([]models.Loan, error)
	// ClientByID возвращает клиента вместе с персональными данными.
	ClientByID(id uint) (*models.Client, error)

	SaveAccount(account *models.Account) error
	SaveLoan(loan *models.Loan) error
	CreateLoan(loan *models.Loan) error
	CreateProcess(process *models.Process) error
	CreateTransaction(transaction *models.Transaction) error
}

// Ledger — хранилище счетов, карт, кредитов и транзакций. Мутации баланса и
// соответствующие им записи транзакций должны выполняться внутри одного
// вызова WithinTransaction: либо фиксируется всё, либо ничего.
type Ledger interface {
	Tx

	// WithinTransaction выполняет fn в рамках одной транзакции хранилища.
	// Возврат ошибки из fn гарантированно откатывает все мутации.
	WithinTransaction(fn func(tx Tx) error) error
}

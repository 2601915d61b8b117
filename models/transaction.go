package models

import (
	"time"
)

// TransactionType представляет тип транзакции
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdraw    TransactionType = "withdraw"
	TransactionTypeTransfer    TransactionType = "transfer"
	TransactionTypeLoanPayment TransactionType = "loan_payment"
)

// Valid проверяет, что тип транзакции входит в перечисление
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdraw, TransactionTypeTransfer, TransactionTypeLoanPayment:
		return true
	}
	return false
}

// TransactionStatusCompleted — статус по умолчанию для проведённой операции
const TransactionStatusCompleted = "completed"

// Transaction представляет неизменяемую запись об одной денежной операции.
// Записи переживают карты и кредиты, на которые ссылаются: при удалении
// инструмента ссылки обнуляются, но сама запись остаётся.
type Transaction struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID        uint            `gorm:"column:client_id;not null;index" json:"client_id"`
	TransactionType TransactionType `gorm:"column:transaction_type;type:varchar(20);not null;index" json:"transaction_type"`
	Amount          float64         `gorm:"column:amount;not null" json:"amount"`
	Description     string          `gorm:"column:description;size:255" json:"description"`
	Status          string          `gorm:"column:status;size:30;not null;default:'completed'" json:"status"`
	FromCardID      *uint           `gorm:"column:from_card_id;constraint:OnDelete:SET NULL" json:"from_card_id,omitempty"`
	ToCardID        *uint           `gorm:"column:to_card_id;constraint:OnDelete:SET NULL" json:"to_card_id,omitempty"`
	LoanID          *uint           `gorm:"column:loan_id;constraint:OnDelete:SET NULL" json:"loan_id,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

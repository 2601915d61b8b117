package models

import (
	"time"
)

// CardType представляет тип карты
type CardType string

const (
	CardTypeDebit  CardType = "DEBIT"
	CardTypeCredit CardType = "CREDIT"
)

// Card представляет банковскую карту. CVV хранится только в зашифрованном
// виде; открытое значение отдаётся один раз при выпуске карты.
type Card struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CardNumber     string    `gorm:"column:card_number;unique;not null;size:16" json:"card_number"`
	CardType       CardType  `gorm:"column:card_type;type:varchar(20);not null" json:"card_type"`
	ExpirationDate time.Time `gorm:"column:expiration_date;not null" json:"expiration_date"`
	CVVEncrypted   string    `gorm:"column:cvv_encrypted;not null" json:"-"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	ClientID       uint      `gorm:"column:client_id;not null;index" json:"client_id"`
	AccountID      uint      `gorm:"column:account_id;not null;index" json:"account_id"`
	Client         Client    `gorm:"foreignKey:ClientID" json:"-"`
	Account        Account   `gorm:"foreignKey:AccountID" json:"-"`
	CreatedAt      time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Card) TableName() string {
	return "cards"
}

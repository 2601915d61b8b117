package models

import (
	"time"
)

// Account представляет банковский счёт клиента
type Account struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountNumber string    `gorm:"column:account_number;unique;not null;size:30" json:"account_number"`
	Balance       float64   `gorm:"column:balance;type:decimal(20,2);not null;default:0.0" json:"balance"`
	ClientID      uint      `gorm:"column:client_id;not null;index" json:"client_id"`
	Client        Client    `gorm:"foreignKey:ClientID" json:"-"`
	Cards         []Card    `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

package models

import (
	"time"
)

// Loan представляет кредит клиента
type Loan struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Amount       float64   `gorm:"column:amount;not null" json:"amount"`
	InterestRate float64   `gorm:"column:interest_rate;not null" json:"interest_rate"`
	TermMonths   int       `gorm:"column:term_months;not null" json:"term_months"`
	IssuedAt     time.Time `gorm:"column:issued_at;default:CURRENT_TIMESTAMP" json:"issued_at"`
	IsPaid       bool      `gorm:"column:is_paid;not null;default:false" json:"is_paid"`
	PaidAmount   float64   `gorm:"column:paid_amount;not null;default:0.0" json:"paid_amount"`
	ClientID     uint      `gorm:"column:client_id;not null;index" json:"client_id"`
	Client       Client    `gorm:"foreignKey:ClientID" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}

// TotalDue возвращает полную сумму к оплате с учётом процентов
func (l *Loan) TotalDue() float64 {
	return l.Amount * (1 + l.InterestRate/100)
}

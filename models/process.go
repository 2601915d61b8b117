package models

import (
	"time"
)

// ProcessType представляет тип процесса оформления
type ProcessType string

const (
	ProcessTypeLoanApplication ProcessType = "loan_application"
	ProcessTypeCardIssue       ProcessType = "card_issue"
	ProcessTypeAccountOpening  ProcessType = "account_opening"
)

// Process представляет процесс оформления (кредита, карты и т.д.)
type Process struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	ProcessType ProcessType `gorm:"column:process_type;type:varchar(50);not null" json:"process_type"`
	Status      string      `gorm:"column:status;size:30;not null;default:'in_progress'" json:"status"`
	ClientID    uint        `gorm:"column:client_id;not null;index" json:"client_id"`
	CreatedAt   time.Time   `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Process) TableName() string {
	return "processes"
}

package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Client представляет клиента банка
type Client struct {
	ID             uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName      string        `gorm:"column:first_name;not null;size:50" json:"first_name"`
	LastName       string        `gorm:"column:last_name;not null;size:50" json:"last_name"`
	Patronymic     string        `gorm:"column:patronymic;size:50" json:"patronymic,omitempty"`
	Email          string        `gorm:"column:email;unique;not null;size:100;index" json:"email"`
	HashedPassword string        `gorm:"column:hashed_password;not null" json:"-"`
	Phone          string        `gorm:"column:phone;size:20" json:"phone,omitempty"`
	CreatedAt      time.Time     `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	PersonalInfo   *PersonalInfo `gorm:"foreignKey:ClientID" json:"personal_info,omitempty"`
	Accounts       []Account     `gorm:"foreignKey:ClientID" json:"-"`
	Cards          []Card        `gorm:"foreignKey:ClientID" json:"-"`
	Loans          []Loan        `gorm:"foreignKey:ClientID" json:"-"`
}

func (Client) TableName() string {
	return "clients"
}

// BeforeCreate хук для валидации перед созданием
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if len(c.FirstName) < 2 || len(c.FirstName) > 50 {
		return errors.New("имя должно содержать от 2 до 50 символов")
	}
	if len(c.LastName) < 2 || len(c.LastName) > 50 {
		return errors.New("фамилия должна содержать от 2 до 50 символов")
	}
	if len(c.Email) < 3 || len(c.Email) > 100 {
		return errors.New("email должен содержать от 3 до 100 символов")
	}
	return nil
}

// PersonalInfo представляет персональные данные клиента (1 к 1)
type PersonalInfo struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	PassportNumber   string     `gorm:"column:passport_number;unique;not null;size:20" json:"passport_number"`
	Address          string     `gorm:"column:address;size:255" json:"address,omitempty"`
	BirthDate        *time.Time `gorm:"column:birth_date" json:"birth_date,omitempty"`
	EmploymentStatus string     `gorm:"column:employment_status;size:100" json:"employment_status,omitempty"`
	ClientID         uint       `gorm:"column:client_id;not null;uniqueIndex" json:"client_id"`
}

func (PersonalInfo) TableName() string {
	return "personal_info"
}

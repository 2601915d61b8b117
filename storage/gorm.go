package storage

import (
	"errors"

	"github.com/peklos/nextbank/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedger реализует Ledger поверх GORM/PostgreSQL
type GormLedger struct {
	db *gorm.DB
}

// NewGormLedger создает новый экземпляр GormLedger
func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// WithinTransaction выполняет fn в транзакции базы данных. gorm.DB.Transaction
// откатывает изменения на любом пути выхода с ошибкой, включая панику.
func (l *GormLedger) WithinTransaction(fn func(tx Tx) error) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormLedger{db: tx})
	})
}

// ActiveCardOfClient возвращает активную карту клиента. Счёт карты читается
// с блокировкой FOR UPDATE: конкурентные операции над одним счётом
// сериализуются на уровне строки.
func (l *GormLedger) ActiveCardOfClient(cardID, clientID uint) (*models.Card, error) {
	var card models.Card
	if err := l.db.Preload("Client").
		Where("id = ? AND client_id = ? AND is_active = ?", cardID, clientID, true).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := l.lockAccount(&card); err != nil {
		return nil, err
	}

	return &card, nil
}

// ActiveCardByNumber возвращает активную карту по её номеру
func (l *GormLedger) ActiveCardByNumber(number string) (*models.Card, error) {
	var card models.Card
	if err := l.db.Preload("Client").
		Where("card_number = ? AND is_active = ?", number, true).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := l.lockAccount(&card); err != nil {
		return nil, err
	}

	return &card, nil
}

// lockAccount читает счёт карты с блокировкой строки
func (l *GormLedger) lockAccount(card *models.Card) error {
	var account models.Account
	if err := l.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, card.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	card.Account = account
	return nil
}

// LoanOfClient возвращает кредит клиента с блокировкой строки
func (l *GormLedger) LoanOfClient(loanID, clientID uint) (*models.Loan, error) {
	var loan models.Loan
	if err := l.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND client_id = ?", loanID, clientID).
		First(&loan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// LoansOfClient возвращает все кредиты клиента
func (l *GormLedger) LoansOfClient(clientID uint) ([]models.Loan, error) {
	var loans []models.Loan
	if err := l.db.Where("client_id = ?", clientID).Find(&loans).Error; err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return []models.Loan{}, nil
	}
	return loans, nil
}

// ClientByID возвращает клиента вместе с персональными данными
func (l *GormLedger) ClientByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := l.db.Preload("PersonalInfo").First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// SaveAccount сохраняет изменения счёта
func (l *GormLedger) SaveAccount(account *models.Account) error {
	return l.db.Save(account).Error
}

// SaveLoan сохраняет изменения кредита
func (l *GormLedger) SaveLoan(loan *models.Loan) error {
	return l.db.Save(loan).Error
}

// CreateLoan создает новый кредит
func (l *GormLedger) CreateLoan(loan *models.Loan) error {
	return l.db.Create(loan).Error
}

// CreateProcess создает новый процесс оформления
func (l *GormLedger) CreateProcess(process *models.Process) error {
	return l.db.Create(process).Error
}

// CreateTransaction добавляет запись о транзакции
func (l *GormLedger) CreateTransaction(transaction *models.Transaction) error {
	return l.db.Create(transaction).Error
}

package services

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/peklos/nextbank/models"
	"gorm.io/gorm"
)

// AccountService предоставляет методы для работы с банковскими счетами
type AccountService struct {
	db *gorm.DB
}

// NewAccountService создает новый экземпляр AccountService
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// Create открывает новый счёт для клиента
func (s *AccountService) Create(clientID uint) (*models.Account, error) {
	account := &models.Account{
		AccountNumber: generateAccountNumber(),
		Balance:       0,
		ClientID:      clientID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, errors.New("не удалось создать счёт")
	}

	return account, nil
}

// GetAccounts возвращает все счета клиента
func (s *AccountService) GetAccounts(clientID uint) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Where("client_id = ?", clientID).Find(&accounts).Error; err != nil {
		return nil, errors.New("ошибка при поиске счетов")
	}
	if len(accounts) == 0 {
		return []models.Account{}, nil
	}
	return accounts, nil
}

// Delete удаляет счёт клиента вместе с привязанными картами. История
// транзакций при этом не удаляется: ссылки на удалённые карты обнуляются.
func (s *AccountService) Delete(clientID, accountID uint) error {
	var account models.Account
	if err := s.db.Where("id = ? AND client_id = ?", accountID, clientID).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	// Карты удаляются каскадом на уровне БД
	return s.db.Delete(&account).Error
}

// generateAccountNumber генерирует 20-значный номер счёта
func generateAccountNumber() string {
	var number strings.Builder
	for i := 0; i < 20; i++ {
		number.WriteString(strconv.Itoa(rand.Intn(10)))
	}
	return number.String()
}

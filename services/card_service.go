package services

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/peklos/nextbank/models"
	"github.com/peklos/nextbank/utils"
	"gorm.io/gorm"
)

// cardValidityYears — срок действия выпускаемой карты
const cardValidityYears = 4

// IssueCardDTO представляет данные для выпуска карты
type IssueCardDTO struct {
	AccountID uint   `json:"account_id" validate:"required"`
	CardType  string `json:"card_type" validate:"required,oneof=DEBIT CREDIT debit credit"`
}

// IssuedCardDTO представляет ответ на выпуск карты. Открытый CVV
// присутствует только здесь: после сохранения он нигде больше не отдаётся.
type IssuedCardDTO struct {
	ID             uint      `json:"id"`
	CardNumber     string    `json:"card_number"`
	CardType       string    `json:"card_type"`
	ExpirationDate time.Time `json:"expiration_date"`
	CVV            string    `json:"cvv"`
	AccountID      uint      `json:"account_id"`
	IsActive       bool      `json:"is_active"`
}

// CardService предоставляет методы для работы с картами
type CardService struct {
	db     *gorm.DB
	cipher *utils.CardCipher
}

// NewCardService создает новый экземпляр CardService
func NewCardService(db *gorm.DB, cipher *utils.CardCipher) *CardService {
	return &CardService{db: db, cipher: cipher}
}

// IssueCard выпускает новую карту к счёту клиента. CVV генерируется,
// шифруется перед сохранением и возвращается в открытом виде ровно один раз.
func (s *CardService) IssueCard(clientID uint, dto IssueCardDTO) (*IssuedCardDTO, error) {
	// Проверяем, что счёт принадлежит клиенту
	var account models.Account
	if err := s.db.Where("id = ? AND client_id = ?", dto.AccountID, clientID).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	cardNumber := generateCardNumber()
	cvv := generateCVV()

	encryptedCVV, err := s.cipher.Encrypt(cvv)
	if err != nil {
		return nil, errors.New("не удалось зашифровать CVV")
	}

	card := &models.Card{
		CardNumber:     cardNumber,
		CardType:       models.CardType(strings.ToUpper(dto.CardType)),
		ExpirationDate: time.Now().AddDate(cardValidityYears, 0, 0),
		CVVEncrypted:   encryptedCVV,
		IsActive:       true,
		ClientID:       clientID,
		AccountID:      dto.AccountID,
	}

	if err := s.db.Create(card).Error; err != nil {
		return nil, errors.New("не удалось создать карту")
	}

	return &IssuedCardDTO{
		ID:             card.ID,
		CardNumber:     card.CardNumber,
		CardType:       string(card.CardType),
		ExpirationDate: card.ExpirationDate,
		CVV:            cvv,
		AccountID:      card.AccountID,
		IsActive:       card.IsActive,
	}, nil
}

// GetCards возвращает все карты клиента. CVV не раскрывается.
func (s *CardService) GetCards(clientID uint) ([]models.Card, error) {
	var cards []models.Card
	if err := s.db.Where("client_id = ?", clientID).Find(&cards).Error; err != nil {
		return nil, errors.New("не удалось получить карты")
	}
	if len(cards) == 0 {
		return []models.Card{}, nil
	}
	return cards, nil
}

// Deactivate деактивирует карту клиента. Деактивированная карта не может
// участвовать в новых денежных операциях.
func (s *CardService) Deactivate(clientID, cardID uint) (*models.Card, error) {
	var card models.Card
	if err := s.db.Where("id = ? AND client_id = ?", cardID, clientID).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	if !card.IsActive {
		return nil, errors.New("карта уже деактивирована")
	}

	card.IsActive = false
	if err := s.db.Save(&card).Error; err != nil {
		return nil, errors.New("не удалось деактивировать карту")
	}

	return &card, nil
}

// Delete удаляет карту клиента. Записи транзакций, ссылающиеся на карту,
// сохраняются — ссылки на удалённую карту обнуляются на уровне БД.
func (s *CardService) Delete(clientID, cardID uint) error {
	var card models.Card
	if err := s.db.Where("id = ? AND client_id = ?", cardID, clientID).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		return err
	}

	return s.db.Delete(&card).Error
}

// generateCardNumber генерирует уникальный 16-значный номер карты:
// 15 случайных цифр и контрольная цифра по алгоритму Луна
func generateCardNumber() string {
	var number strings.Builder
	for i := 0; i < 15; i++ {
		number.WriteString(strconv.Itoa(rand.Intn(10)))
	}
	partial := number.String()
	return partial + strconv.Itoa(luhnCheckDigit(partial))
}

// luhnCheckDigit вычисляет контрольную цифру для неполного номера
func luhnCheckDigit(partial string) int {
	sum := 0
	// Цифры перебираются справа налево; позиции, чётные относительно
	// будущей контрольной цифры, удваиваются
	for i := 0; i < len(partial); i++ {
		digit := int(partial[len(partial)-1-i] - '0')
		if i%2 == 0 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}
	return (10 - sum%10) % 10
}

// validateLuhn проверяет номер карты по алгоритму Луна
func validateLuhn(number string) bool {
	sum := 0
	for i := 0; i < len(number); i++ {
		digit := int(number[len(number)-1-i] - '0')
		if i%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}
	return sum%10 == 0
}

// generateCVV генерирует трёхзначный CVV
func generateCVV() string {
	var cvv strings.Builder
	for i := 0; i < 3; i++ {
		cvv.WriteString(strconv.Itoa(rand.Intn(10)))
	}
	return cvv.String()
}

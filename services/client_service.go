package services

import (
	"errors"
	"time"

	"github.com/peklos/nextbank/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateClientRequest представляет данные для регистрации клиента
type CreateClientRequest struct {
	FirstName  string `json:"first_name" validate:"required,min=2,max=50"`
	LastName   string `json:"last_name" validate:"required,min=2,max=50"`
	Patronymic string `json:"patronymic" validate:"omitempty,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
}

// PersonalInfoDTO представляет персональные данные клиента
type PersonalInfoDTO struct {
	PassportNumber   string     `json:"passport_number" validate:"required,min=6,max=20"`
	Address          string     `json:"address" validate:"omitempty,max=255"`
	BirthDate        *time.Time `json:"birth_date"`
	EmploymentStatus string     `json:"employment_status" validate:"omitempty,max=100"`
}

// ClientService предоставляет методы для работы с клиентами
type ClientService struct {
	db *gorm.DB
}

// NewClientService создает новый экземпляр ClientService
func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

// Create регистрирует нового клиента
func (s *ClientService) Create(req CreateClientRequest) (*models.Client, error) {
	// Проверяем, существует ли клиент с таким email
	var existing models.Client
	if err := s.db.Where("LOWER(email) = LOWER(?)", req.Email).First(&existing).Error; err == nil {
		return nil, errors.New("клиент с таким email уже существует")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	client := &models.Client{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Patronymic:     req.Patronymic,
		Email:          req.Email,
		HashedPassword: string(hashedPassword),
		Phone:          req.Phone,
	}

	if err := s.db.Create(client).Error; err != nil {
		return nil, err
	}

	return client, nil
}

// FindByEmail ищет клиента по email (игнорируя регистр и пробелы)
func (s *ClientService) FindByEmail(email string) (*models.Client, error) {
	var client models.Client
	if err := s.db.Where("LOWER(TRIM(email)) = LOWER(TRIM(?))", email).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindByID возвращает клиента вместе с персональными данными
func (s *ClientService) FindByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.Preload("PersonalInfo").First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// UpsertPersonalInfo создает или обновляет персональные данные клиента
func (s *ClientService) UpsertPersonalInfo(clientID uint, dto PersonalInfoDTO) (*models.PersonalInfo, error) {
	var info models.PersonalInfo
	err := s.db.Where("client_id = ?", clientID).First(&info).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	info.ClientID = clientID
	info.PassportNumber = dto.PassportNumber
	info.Address = dto.Address
	info.BirthDate = dto.BirthDate
	info.EmploymentStatus = dto.EmploymentStatus

	if err := s.db.Save(&info).Error; err != nil {
		return nil, errors.New("не удалось сохранить персональные данные")
	}

	return &info, nil
}

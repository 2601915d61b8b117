package services

import (
	"errors"

	"github.com/peklos/nextbank/models"
	"gorm.io/gorm"
)

// TransactionStatsDTO представляет статистику по транзакциям клиента
type TransactionStatsDTO struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalDeposits     float64 `json:"total_deposits"`
	TotalWithdrawals  float64 `json:"total_withdrawals"`
	TotalTransfers    float64 `json:"total_transfers"`
	TotalLoanPayments float64 `json:"total_loan_payments"`
}

// TransactionService предоставляет чтение истории транзакций. Сами записи
// создаются только денежными движками и никогда не изменяются.
type TransactionService struct {
	db *gorm.DB
}

// NewTransactionService создает новый экземпляр TransactionService
func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

// GetTransactions возвращает транзакции клиента с пагинацией и фильтром по типу
func (s *TransactionService) GetTransactions(clientID uint, limit, offset int, transactionType string) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.db.Where("client_id = ?", clientID)
	if transactionType != "" {
		query = query.Where("transaction_type = ?", transactionType)
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&transactions).Error; err != nil {
		return nil, errors.New("ошибка при получении транзакций")
	}
	if len(transactions) == 0 {
		return []models.Transaction{}, nil
	}
	return transactions, nil
}

// GetTransaction возвращает транзакцию клиента по ID
func (s *TransactionService) GetTransaction(clientID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND client_id = ?", transactionID, clientID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("транзакция не найдена")
		}
		return nil, err
	}
	return &transaction, nil
}

// GetStats возвращает статистику по проведённым транзакциям клиента
func (s *TransactionService) GetStats(clientID uint) (*TransactionStatsDTO, error) {
	var transactions []models.Transaction
	if err := s.db.Where("client_id = ? AND status = ?", clientID, models.TransactionStatusCompleted).
		Find(&transactions).Error; err != nil {
		return nil, errors.New("ошибка при получении статистики")
	}

	stats := &TransactionStatsDTO{TotalTransactions: len(transactions)}
	for _, t := range transactions {
		switch t.TransactionType {
		case models.TransactionTypeDeposit:
			stats.TotalDeposits += t.Amount
		case models.TransactionTypeWithdraw:
			stats.TotalWithdrawals += t.Amount
		case models.TransactionTypeTransfer:
			stats.TotalTransfers += t.Amount
		case models.TransactionTypeLoanPayment:
			stats.TotalLoanPayments += t.Amount
		}
	}

	return stats, nil
}

// Search ищет транзакции клиента по описанию или сумме
func (s *TransactionService) Search(clientID uint, query string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("client_id = ?", clientID).
		Where("description ILIKE ? OR CAST(amount AS TEXT) ILIKE ?", "%"+query+"%", "%"+query+"%").
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, errors.New("ошибка при поиске транзакций")
	}
	if len(transactions) == 0 {
		return []models.Transaction{}, nil
	}
	return transactions, nil
}

package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/peklos/nextbank/services"
)

// AmountDTO представляет сумму операции пополнения или снятия
type AmountDTO struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// TransferDTO представляет данные перевода на карту по её номеру
type TransferDTO struct {
	ToCardNumber string  `json:"to_card_number" validate:"required,len=16,numeric"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
}

// CardController обрабатывает запросы, связанные с картами и денежными
// операциями по ним
type CardController struct {
	cardService  *services.CardService
	moneyService *services.MoneyService
	validator    *validator.Validate
}

// NewCardController создает новый экземпляр CardController
func NewCardController(cardService *services.CardService, moneyService *services.MoneyService) *CardController {
	return &CardController{
		cardService:  cardService,
		moneyService: moneyService,
		validator:    validator.New(),
	}
}

// IssueCard обрабатывает запрос на выпуск карты
func (c *CardController) IssueCard(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	var dto services.IssueCardDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateRequest(c.validator, dto); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	card, err := c.cardService.IssueCard(clientID, dto)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, card)
}

// GetCards обрабатывает запрос на получение списка карт клиента
func (c *CardController) GetCards(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	cards, err := c.cardService.GetCards(clientID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cards)
}

// DeactivateCard обрабатывает запрос на деактивацию карты
func (c *CardController) DeactivateCard(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	cardID, ok := cardIDFromPath(w, r)
	if !ok {
		return
	}

	card, err := c.cardService.Deactivate(clientID, cardID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, card)
}

// DeleteCard обрабатывает запрос на удаление карты
func (c *CardController) DeleteCard(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	cardID, ok := cardIDFromPath(w, r)
	if !ok {
		return
	}

	if err := c.cardService.Delete(clientID, cardID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Карта удалена"})
}

// Deposit обрабатывает запрос на пополнение карты
func (c *CardController) Deposit(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	cardID, ok := cardIDFromPath(w, r)
	if !ok {
		return
	}

	var dto AmountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateRequest(c.validator, dto); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := c.moneyService.Deposit(clientID, cardID, dto.Amount)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Withdraw обрабатывает запрос на снятие средств с карты
func (c *CardController) Withdraw(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	cardID, ok := cardIDFromPath(w, r)
	if !ok {
		return
	}

	var dto AmountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateRequest(c.validator, dto); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := c.moneyService.Withdraw(clientID, cardID, dto.Amount)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Transfer обрабатывает запрос на перевод средств на другую карту
func (c *CardController) Transfer(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	cardID, ok := cardIDFromPath(w, r)
	if !ok {
		return
	}

	var dto TransferDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateRequest(c.validator, dto); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := c.moneyService.Transfer(clientID, cardID, dto.ToCardNumber, dto.Amount)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// cardIDFromPath получает ID карты из URL
func cardIDFromPath(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	cardID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid card ID", http.StatusBadRequest)
		return 0, false
	}
	return uint(cardID), true
}

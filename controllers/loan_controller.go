package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/peklos/nextbank/services"
)

// LoanController обрабатывает запросы, связанные с кредитами
type LoanController struct {
	loanService *services.LoanService
	validator   *validator.Validate
}

// NewLoanController создает новый экземпляр LoanController
func NewLoanController(loanService *services.LoanService) *LoanController {
	return &LoanController{
		loanService: loanService,
		validator:   validator.New(),
	}
}

// ApplyLoan обрабатывает заявку на кредит
func (c *LoanController) ApplyLoan(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	var dto services.LoanApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateRequest(c.validator, dto); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	loan, err := c.loanService.Apply(clientID, dto)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, loan)
}

// GetLoans обрабатывает запрос на получение списка кредитов клиента
func (c *LoanController) GetLoans(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	loans, err := c.loanService.GetLoans(clientID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, loans)
}

// GetLoan обрабатывает запрос на получение информации о кредите
func (c *LoanController) GetLoan(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	loanID, ok := loanIDFromPath(w, r)
	if !ok {
		return
	}

	loan, err := c.loanService.GetLoan(clientID, loanID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, loan)
}

// PayLoan обрабатывает платёж по кредиту
func (c *LoanController) PayLoan(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	loanID, ok := loanIDFromPath(w, r)
	if !ok {
		return
	}

	var dto services.LoanPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateRequest(c.validator, dto); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := c.loanService.Pay(clientID, loanID, dto)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetSchedule обрабатывает запрос графика платежей по кредиту
func (c *LoanController) GetSchedule(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	loanID, ok := loanIDFromPath(w, r)
	if !ok {
		return
	}

	schedule, err := c.loanService.Schedule(clientID, loanID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, schedule)
}

// loanIDFromPath получает ID кредита из URL
func loanIDFromPath(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	loanID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid loan ID", http.StatusBadRequest)
		return 0, false
	}
	return uint(loanID), true
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/peklos/nextbank/services"
)

// AccountController обрабатывает запросы, связанные со счетами
type AccountController struct {
	accountService *services.AccountService
}

// NewAccountController создает новый экземпляр AccountController
func NewAccountController(accountService *services.AccountService) *AccountController {
	return &AccountController{accountService: accountService}
}

// CreateAccount обрабатывает запрос на открытие счёта
func (c *AccountController) CreateAccount(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	account, err := c.accountService.Create(clientID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, account)
}

// GetAccounts обрабатывает запрос на получение списка счетов клиента
func (c *AccountController) GetAccounts(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	accounts, err := c.accountService.GetAccounts(clientID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, accounts)
}

// DeleteAccount обрабатывает запрос на удаление счёта
func (c *AccountController) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	accountID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid account ID", http.StatusBadRequest)
		return
	}

	if err := c.accountService.Delete(clientID, uint(accountID)); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Счёт удалён"})
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/peklos/nextbank/services"
)

// TransactionController обрабатывает запросы истории транзакций
type TransactionController struct {
	transactionService *services.TransactionService
}

// NewTransactionController создает новый экземпляр TransactionController
func NewTransactionController(transactionService *services.TransactionService) *TransactionController {
	return &TransactionController{transactionService: transactionService}
}

// GetTransactions обрабатывает запрос истории транзакций клиента
func (c *TransactionController) GetTransactions(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	transactionType := r.URL.Query().Get("type")

	transactions, err := c.transactionService.GetTransactions(clientID, limit, offset, transactionType)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, transactions)
}

// GetTransaction обрабатывает запрос одной транзакции
func (c *TransactionController) GetTransaction(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	transactionID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid transaction ID", http.StatusBadRequest)
		return
	}

	transaction, err := c.transactionService.GetTransaction(clientID, uint(transactionID))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, transaction)
}

// GetStats обрабатывает запрос статистики транзакций клиента
func (c *TransactionController) GetStats(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	stats, err := c.transactionService.GetStats(clientID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// SearchTransactions обрабатывает поиск транзакций по описанию или сумме
func (c *TransactionController) SearchTransactions(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	transactions, err := c.transactionService.Search(clientID, query)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, transactions)
}

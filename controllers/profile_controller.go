package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/peklos/nextbank/services"
)

// ProfileController обрабатывает запросы профиля клиента
type ProfileController struct {
	clientService *services.ClientService
	validator     *validator.Validate
}

// NewProfileController создает новый экземпляр ProfileController
func NewProfileController(clientService *services.ClientService) *ProfileController {
	return &ProfileController{
		clientService: clientService,
		validator:     validator.New(),
	}
}

// Me обрабатывает запрос на получение профиля текущего клиента
func (c *ProfileController) Me(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	client, err := c.clientService.FindByID(clientID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// UpdatePersonalInfo обрабатывает запрос на сохранение персональных данных.
// Без персональных данных клиент не может подать заявку на кредит.
func (c *ProfileController) UpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientFromContext(w, r)
	if !ok {
		return
	}

	var dto services.PersonalInfoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateRequest(c.validator, dto); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	info, err := c.clientService.UpsertPersonalInfo(clientID, dto)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

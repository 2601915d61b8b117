package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/peklos/nextbank/services"
)

// errorResponse представляет тело ответа с ошибкой
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON отправляет JSON-ответ с указанным статусом
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError отправляет ошибку, сопоставляя её с HTTP-статусом
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrCardNotFound),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrLoanNotFound),
		errors.Is(err, services.ErrClientNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrLoanAlreadyPaid),
		errors.Is(err, services.ErrExceedsRemaining),
		errors.Is(err, services.ErrPersonalInfoRequired):
		status = http.StatusBadRequest
	}

	respondJSON(w, status, errorResponse{Error: err.Error()})
}

// validateRequest валидирует DTO и возвращает ошибки валидации
func validateRequest(v *validator.Validate, dto interface{}) error {
	if err := v.Struct(dto); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
			case "gt":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше 0")
			case "gte":
				errorMessages = append(errorMessages, "поле "+e.Field()+" не может быть отрицательным")
			case "min":
				errorMessages = append(errorMessages, "поле "+e.Field()+" слишком короткое")
			case "max":
				errorMessages = append(errorMessages, "поле "+e.Field()+" слишком длинное")
			case "email":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть корректным email")
			case "oneof":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть одним из: "+e.Param())
			default:
				errorMessages = append(errorMessages, "поле "+e.Field()+" заполнено неверно")
			}
		}
		return errors.New(strings.Join(errorMessages, "; "))
	}
	return nil
}

// clientFromContext получает ID клиента из контекста запроса
func clientFromContext(w http.ResponseWriter, r *http.Request) (uint, bool) {
	clientID, ok := r.Context().Value("client_id").(uint)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return clientID, true
}

package controllers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/peklos/nextbank/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrCardNotFound, 404},
		{services.ErrAccountNotFound, 404},
		{services.ErrLoanNotFound, 404},
		{services.ErrClientNotFound, 404},
		{services.ErrInvalidAmount, 400},
		{services.ErrInsufficientFunds, 400},
		{services.ErrLoanAlreadyPaid, 400},
		{services.ErrExceedsRemaining, 400},
		{services.ErrPersonalInfoRequired, 400},
		{assert.AnError, 500},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		respondError(w, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())

		var body errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.err.Error(), body.Error)
	}
}

func TestRespondErrorWrapped(t *testing.T) {
	// Обёрнутая ошибка сохраняет статус исходной
	w := httptest.NewRecorder()
	respondError(w, fmt.Errorf("карта отправителя: %w", services.ErrCardNotFound))
	assert.Equal(t, 404, w.Code)
}

func TestValidateRequest(t *testing.T) {
	v := validator.New()

	err := validateRequest(v, services.LoanApplicationDTO{Amount: 100000, InterestRate: 15, TermMonths: 12})
	assert.NoError(t, err)

	err = validateRequest(v, services.LoanApplicationDTO{Amount: -1, TermMonths: 12})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Amount")

	err = validateRequest(v, services.IssueCardDTO{AccountID: 1, CardType: "GOLD"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "должно быть одним из")

	err = validateRequest(v, SignInRequest{Email: "не email", Password: "secret"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

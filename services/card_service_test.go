package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCardNumber(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		number := generateCardNumber()

		require.Len(t, number, 16)
		assert.True(t, validateLuhn(number), "номер %s не проходит проверку Луна", number)

		for _, r := range number {
			assert.True(t, r >= '0' && r <= '9')
		}

		seen[number] = true
	}

	// Совпадения возможны, но 100 одинаковых номеров — признак поломки генератора
	assert.Greater(t, len(seen), 1)
}

func TestValidateLuhnRejectsCorruptedNumber(t *testing.T) {
	number := generateCardNumber()
	require.True(t, validateLuhn(number))

	// Искажаем последнюю цифру
	last := number[15] - '0'
	corrupted := number[:15] + string(rune('0'+(last+1)%10))
	assert.False(t, validateLuhn(corrupted))
}

func TestGenerateCVV(t *testing.T) {
	for i := 0; i < 20; i++ {
		cvv := generateCVV()
		require.Len(t, cvv, 3)
		for _, r := range cvv {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestMaskedCard(t *testing.T) {
	assert.Equal(t, "3456", maskedCard("1234567890123456"))
	assert.Equal(t, "123", maskedCard("123"))
}

func TestFormatRub(t *testing.T) {
	assert.Equal(t, "1234.50 ₽", formatRub(1234.5))
	assert.Equal(t, "0.10 ₽", formatRub(0.1))
}

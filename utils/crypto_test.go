package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
)

// generateTestKeys создает пару PGP-ключей для тестов
func generateTestKeys(t *testing.T) (publicKey, privateKey string) {
	t.Helper()

	entity, err := openpgp.NewEntity("NextBank", "card keys", "cards@nextbank.local", nil)
	require.NoError(t, err)

	// Приватный ключ сериализуется первым: при этом подписываются identity
	var priv bytes.Buffer
	privWriter, err := armor.Encode(&priv, openpgp.PrivateKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, entity.SerializePrivate(privWriter, nil))
	require.NoError(t, privWriter.Close())

	var pub bytes.Buffer
	pubWriter, err := armor.Encode(&pub, openpgp.PublicKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, entity.Serialize(pubWriter))
	require.NoError(t, pubWriter.Close())

	return pub.String(), priv.String()
}

func TestCardCipherRoundTrip(t *testing.T) {
	publicKey, privateKey := generateTestKeys(t)
	cipher := NewCardCipher(publicKey, privateKey)

	encrypted, err := cipher.Encrypt("123")
	require.NoError(t, err)

	assert.NotContains(t, encrypted, "123")
	assert.Contains(t, encrypted, "PGP MESSAGE")

	decrypted, err := cipher.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "123", decrypted)
}

func TestCardCipherEncryptWithInvalidKey(t *testing.T) {
	cipher := NewCardCipher("не ключ", "не ключ")

	_, err := cipher.Encrypt("123")
	assert.Error(t, err)
}

func TestCardCipherDecryptGarbage(t *testing.T) {
	publicKey, privateKey := generateTestKeys(t)
	cipher := NewCardCipher(publicKey, privateKey)

	_, err := cipher.Decrypt("не сообщение")
	assert.Error(t, err)
}

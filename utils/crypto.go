package utils

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
	"golang.org/x/crypto/openpgp/packet"
	_ "golang.org/x/crypto/ripemd160"
)

// CardCipher шифрует секреты карт (CVV) PGP-ключами банка. Шифрование
// выполняется публичным ключом при выпуске карты; приватный ключ нужен
// только для расшифровки и не обязателен для работы сервиса выпуска.
type CardCipher struct {
	publicKey  string
	privateKey string
}

// NewCardCipher создает новый экземпляр CardCipher
func NewCardCipher(publicKey, privateKey string) *CardCipher {
	return &CardCipher{
		publicKey:  publicKey,
		privateKey: privateKey,
	}
}

// Encrypt шифрует данные публичным ключом и возвращает armored PGP-сообщение
func (c *CardCipher) Encrypt(data string) (string, error) {
	entityList, err := openpgp.ReadArmoredKeyRing(strings.NewReader(c.publicKey))
	if err != nil {
		return "", fmt.Errorf("ошибка чтения публичного ключа: %v", err)
	}

	var buf strings.Builder
	armoredWriter, err := armor.Encode(&buf, "PGP MESSAGE", nil)
	if err != nil {
		return "", fmt.Errorf("ошибка создания armored writer: %v", err)
	}

	plaintext, err := openpgp.Encrypt(armoredWriter, entityList, nil, nil, &packet.Config{})
	if err != nil {
		return "", fmt.Errorf("ошибка шифрования: %v", err)
	}

	if _, err := plaintext.Write([]byte(data)); err != nil {
		return "", fmt.Errorf("ошибка записи данных: %v", err)
	}

	if err := plaintext.Close(); err != nil {
		return "", fmt.Errorf("ошибка завершения шифрования: %v", err)
	}

	if err := armoredWriter.Close(); err != nil {
		return "", fmt.Errorf("ошибка завершения armored writer: %v", err)
	}

	return buf.String(), nil
}

// Decrypt расшифровывает armored PGP-сообщение приватным ключом
func (c *CardCipher) Decrypt(encryptedData string) (string, error) {
	entityList, err := openpgp.ReadArmoredKeyRing(strings.NewReader(c.privateKey))
	if err != nil {
		return "", fmt.Errorf("ошибка чтения приватного ключа: %v", err)
	}

	block, err := armor.Decode(strings.NewReader(encryptedData))
	if err != nil {
		return "", fmt.Errorf("ошибка декодирования сообщения: %v", err)
	}

	md, err := openpgp.ReadMessage(block.Body, entityList, nil, &packet.Config{})
	if err != nil {
		return "", fmt.Errorf("ошибка чтения сообщения: %v", err)
	}

	decrypted, err := io.ReadAll(md.UnverifiedBody)
	if err != nil {
		return "", fmt.Errorf("ошибка расшифровки: %v", err)
	}

	return string(decrypted), nil
}

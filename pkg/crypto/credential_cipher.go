package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"tastebook/domain"
)

type (
	// CredentialCipher stores passwords reversibly. Password recovery mails
	// the plaintext back to the user, so one-way hashing is not an option
	// here; the trade-off is documented in DESIGN.md.
	CredentialCipher interface {
		Encrypt(plaintext string) (string, error)
		Decrypt(ciphertext string) (string, error)
	}

	credentialCipher struct {
		key []byte
	}
)

func NewCredentialCipher(secret string) CredentialCipher {
	sum := sha256.Sum256([]byte(secret))
	return &credentialCipher{key: sum[:]}
}

func (c *credentialCipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	raw := make([]byte, aes.BlockSize+len(plaintext))
	iv := raw[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(raw[aes.BlockSize:], []byte(plaintext))

	return base64.StdEncoding.EncodeToString(raw), nil
}

func (c *credentialCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", domain.ErrDecodingFailed
	}
	if len(raw) < aes.BlockSize {
		return "", domain.ErrDecodingFailed
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	iv := raw[:aes.BlockSize]
	body := raw[aes.BlockSize:]

	stream := cipher.NewCFBDecrypter(block, iv)
	plaintext := make([]byte, len(body))
	stream.XORKeyStream(plaintext, body)

	return string(plaintext), nil
}

// Package crypto provides the symmetric cipher used for GSP credentials at rest.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Cipher encrypts and decrypts opaque credential blobs. The algorithm is
// swappable behind this interface.
type Cipher interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(encoded string) ([]byte, error)
}

// kdfSalt is fixed so the same configured secret always derives the same key.
var kdfSalt = []byte("gstsuite-credential-store")

const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	keyLen       = 32
	encodedParts = 2
)

type aesCipher struct {
	key []byte
}

// NewAESCipher derives an AES-256 key from secret via scrypt and returns a
// Cipher producing hex(iv):hex(ciphertext) blobs with a random IV per call.
func NewAESCipher(secret string) (Cipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("crypto: empty secret")
	}
	key, err := scrypt.Key([]byte(secret), kdfSalt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("crypto: deriving key: %w", err)
	}
	return &aesCipher{key: key}, nil
}

func (c *aesCipher) Encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("crypto: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("crypto: generating iv: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

func (c *aesCipher) Decrypt(encoded string) ([]byte, error) {
	parts := strings.SplitN(encoded, ":", encodedParts)
	if len(parts) != encodedParts {
		return nil, fmt.Errorf("crypto: malformed blob")
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("crypto: malformed iv")
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("crypto: malformed ciphertext")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("crypto: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext, aes.BlockSize)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("crypto: invalid padding")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, fmt.Errorf("crypto: invalid padding")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("crypto: invalid padding")
		}
	}
	return data[:len(data)-padLen], nil
}

// File: internal/service/crypto.go
package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// keyVersionPrefix tags every ciphertext with the key version that produced
// it, so the key can be rotated without breaking stored records.
const keyVersionPrefix = "v1:"

// ErrUndecryptable marks ciphertexts that cannot be recovered with the
// configured key. Callers treat such records as absent, never as fatal.
var ErrUndecryptable = errors.New("undecryptable ciphertext")

// Cipher encrypts and decrypts short text fields with AES-256-GCM. The key is
// derived from an injected secret and fixed for the process lifetime.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives a 256-bit key from the secret via SHA-256.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, errors.New("empty encryption secret")
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals the plaintext under a fresh random nonce and returns
// "v1:" + base64(nonce || ciphertext).
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return keyVersionPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Corrupt input, an unknown key version, or a
// ciphertext produced under a different key all yield ErrUndecryptable.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	if !strings.HasPrefix(ciphertext, keyVersionPrefix) {
		return "", fmt.Errorf("%w: unknown key version", ErrUndecryptable)
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext[len(keyVersionPrefix):])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecryptable, err)
	}
	if len(raw) < c.aead.NonceSize() {
		return "", fmt.Errorf("%w: truncated payload", ErrUndecryptable)
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecryptable, err)
	}
	return string(plain), nil
}

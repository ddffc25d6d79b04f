// Package vault provides authenticated encryption for audit payloads.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrDecryption indicates tampering, truncation, or a wrong key. The
// payload is never partially returned.
var ErrDecryption = errors.New("vault: decryption failed")

// Vault seals and opens structured payloads with a single process-wide
// AES-256-GCM key. It holds no other state.
type Vault struct {
	aead cipher.AEAD
}

// New constructs a Vault from a 32-byte key.
func New(key []byte) (*Vault, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("vault key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Vault{aead: aead}, nil
}

// EncryptJSON serializes the payload and seals it. The nonce is prefixed
// to the ciphertext.
func (v *Vault) EncryptJSON(payload any) ([]byte, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	nonce := make([]byte, v.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return v.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a sealed payload into out. Returns ErrDecryption on any
// authentication or framing failure.
func (v *Vault) Decrypt(data []byte, out any) error {
	nonceSize := v.aead.NonceSize()
	if len(data) < nonceSize {
		return ErrDecryption
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := v.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return ErrDecryption
	}

	if err := json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}

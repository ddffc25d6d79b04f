package vault

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestNewRejectsShortKey(t *testing.T) {
	if _, err := New(make([]byte, 16)); err == nil {
		t.Error("expected error for 16-byte key")
	}
}

func TestEncryptDecryptRoundtrip(t *testing.T) {
	v, err := New(testKey(t))
	if err != nil {
		t.Fatalf("new vault: %v", err)
	}

	payload := map[string]any{"prompt_len": float64(42), "endpoint": "/v1/ask"}
	sealed, err := v.EncryptJSON(payload)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if bytes.Contains(sealed, []byte("prompt_len")) {
		t.Error("ciphertext leaks plaintext field names")
	}

	var got map[string]any
	if err := v.Decrypt(sealed, &got); err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if got["endpoint"] != "/v1/ask" || got["prompt_len"] != float64(42) {
		t.Errorf("roundtrip mismatch: %v", got)
	}
}

func TestDecryptWithWrongKey(t *testing.T) {
	v1, _ := New(testKey(t))
	v2, _ := New(testKey(t))

	sealed, err := v1.EncryptJSON(map[string]string{"a": "b"})
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	var out map[string]string
	if err := v2.Decrypt(sealed, &out); !errors.Is(err, ErrDecryption) {
		t.Errorf("expected ErrDecryption, got %v", err)
	}
}

func TestDecryptTampered(t *testing.T) {
	v, _ := New(testKey(t))

	sealed, err := v.EncryptJSON(map[string]string{"a": "b"})
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	sealed[len(sealed)-1] ^= 0xff
	var out map[string]string
	if err := v.Decrypt(sealed, &out); !errors.Is(err, ErrDecryption) {
		t.Errorf("expected ErrDecryption for tampered ciphertext, got %v", err)
	}
}

func TestDecryptTruncated(t *testing.T) {
	v, _ := New(testKey(t))

	var out map[string]string
	if err := v.Decrypt([]byte{0x01, 0x02}, &out); !errors.Is(err, ErrDecryption) {
		t.Errorf("expected ErrDecryption for truncated input, got %v", err)
	}
}

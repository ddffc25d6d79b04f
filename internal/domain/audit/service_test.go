package audit

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/vault"
	"github.com/adarsh20n06-web/vetra-server/internal/utils/platformerrors"
)

type memAuditRepo struct {
	entries   []*Entry
	appendErr error
}

func (r *memAuditRepo) Append(ctx context.Context, entry *Entry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memAuditRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.entries)), nil
}

func newTestVault(t *testing.T) *vault.Vault {
	t.Helper()
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("generate key: %v", err)
	}
	v, err := vault.New(key)
	if err != nil {
		t.Fatalf("new vault: %v", err)
	}
	return v
}

func TestRecordStoresCiphertextOnly(t *testing.T) {
	repo := &memAuditRepo{}
	rec := NewRecorder(repo, newTestVault(t), zerolog.Nop())

	keyID := "key-1"
	meta := map[string]any{"prompt_len": 17}
	if err := rec.Record(context.Background(), &keyID, "user@example.com", "/v1/ask", meta); err != nil {
		t.Fatalf("record: %v", err)
	}

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.KeyID == nil || *entry.KeyID != "key-1" {
		t.Errorf("key reference lost: %v", entry.KeyID)
	}
	if bytes.Contains(entry.Ciphertext, []byte("prompt_len")) {
		t.Error("metadata stored in the clear")
	}

	opened, err := rec.Open(entry)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened["prompt_len"] != float64(17) {
		t.Errorf("opened metadata = %v", opened)
	}
}

func TestRecordNilKeyAndMetadata(t *testing.T) {
	repo := &memAuditRepo{}
	rec := NewRecorder(repo, newTestVault(t), zerolog.Nop())

	if err := rec.Record(context.Background(), nil, "user@example.com", "/v1/ask", nil); err != nil {
		t.Fatalf("record: %v", err)
	}

	entry := repo.entries[0]
	if entry.KeyID != nil {
		t.Error("expected nil key reference")
	}
	opened, err := rec.Open(entry)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(opened) != 0 {
		t.Errorf("expected empty metadata, got %v", opened)
	}
}

func TestRecordFailsClosedOnStoreError(t *testing.T) {
	repo := &memAuditRepo{appendErr: errors.New("connection reset")}
	rec := NewRecorder(repo, newTestVault(t), zerolog.Nop())

	err := rec.Record(context.Background(), nil, "user@example.com", "/v1/ask", nil)
	if err == nil {
		t.Fatal("expected error when the store rejects the append")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeDatabaseError) {
		t.Errorf("expected DATABASE_ERROR classification, got %v", err)
	}
}

func TestOpenRejectsForeignCiphertext(t *testing.T) {
	repo := &memAuditRepo{}
	rec := NewRecorder(repo, newTestVault(t), zerolog.Nop())
	other := NewRecorder(repo, newTestVault(t), zerolog.Nop())

	if err := rec.Record(context.Background(), nil, "user@example.com", "/v1/ask", map[string]any{"a": 1}); err != nil {
		t.Fatalf("record: %v", err)
	}

	if _, err := other.Open(repo.entries[0]); !errors.Is(err, vault.ErrDecryption) {
		t.Errorf("expected ErrDecryption with a different vault key, got %v", err)
	}
}

// Package audit maintains the immutable encrypted trail of admitted
// requests.
package audit

import (
	"context"
	"time"
)

// Entry is one admitted request. Metadata is stored only as ciphertext;
// once appended the row is never updated or deleted through this core.
type Entry struct {
	ID         string
	KeyID      *string
	OwnerEmail string
	Endpoint   string
	Ciphertext []byte
	RecordedAt time.Time
}

// Repository defines the append-only store for audit entries. There is
// deliberately no update or delete operation.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	Count(ctx context.Context) (int64, error)
}

package apikey

import (
	"context"
	"errors"
	"time"
)

// Credential verification failures, in check priority order. NotFound is
// reported when no stored hash matches; the rest apply only to a key
// whose hash matched.
var (
	ErrNotFound        = errors.New("api key not found")
	ErrExpired         = errors.New("api key expired")
	ErrRevoked         = errors.New("api key revoked")
	ErrQuotaExhausted  = errors.New("api key usage limit reached")
	ErrAddressMismatch = errors.New("api key bound to a different address")
)

// APIKey represents persistent metadata for an API key. The plaintext
// secret is never stored; only its bcrypt hash and lookup tag are.
type APIKey struct {
	ID         string
	OwnerEmail string
	LookupTag  string
	Hash       string
	Suffix     string
	Uses       int
	MaxUses    int
	BoundAddr  *string
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	LastUsedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Repository defines storage operations for API keys. Rows are never
// deleted; revocation and expiry leave them in place for audit
// traceability.
type Repository interface {
	Create(ctx context.Context, key *APIKey) (*APIKey, error)
	FindByID(ctx context.Context, id string) (*APIKey, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]APIKey, error)
	// FindByLookupTag returns every key sharing the tag, including revoked
	// and expired ones, so a hash match can be classified precisely.
	FindByLookupTag(ctx context.Context, tag string) ([]APIKey, error)
	// ConsumeUse atomically increments the use counter, guarded by the
	// pre-increment value. Returns false without error when another
	// caller won the race.
	ConsumeUse(ctx context.Context, id string, expectedUses int, usedAt time.Time) (bool, error)
	MarkRevoked(ctx context.Context, id string, revokedAt time.Time) error
	Count(ctx context.Context) (int64, error)
}

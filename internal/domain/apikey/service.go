package apikey

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service orchestrates the API key lifecycle: issuance, verification
// with atomic quota consumption, and revocation.
type Service struct {
	repo     Repository
	codec    *Codec
	logger   zerolog.Logger
	expiry   time.Duration
	maxUses  int
	bindAddr bool
}

// Config configures the Service.
type Config struct {
	Expiry      time.Duration
	MaxUses     int
	BindAddress bool
}

// Grant identifies the owner and key behind a successful verification.
type Grant struct {
	KeyID      string
	OwnerEmail string
}

// NewService constructs an API key service.
func NewService(repo Repository, codec *Codec, cfg Config, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		codec:    codec,
		logger:   logger.With().Str("component", "api-key-service").Logger(),
		expiry:   cfg.Expiry,
		maxUses:  cfg.MaxUses,
		bindAddr: cfg.BindAddress,
	}
}

// Issue generates a new key for the owner and persists its metadata.
// The returned plaintext is shown exactly once and is unrecoverable
// afterwards.
func (s *Service) Issue(ctx context.Context, ownerEmail, clientAddr string) (*APIKey, string, error) {
	ownerEmail = strings.ToLower(strings.TrimSpace(ownerEmail))
	if ownerEmail == "" {
		return nil, "", fmt.Errorf("owner email is required")
	}

	plaintext, err := s.codec.Generate()
	if err != nil {
		return nil, "", err
	}
	hash, err := s.codec.Hash(plaintext)
	if err != nil {
		return nil, "", err
	}

	suffix := ""
	if len(plaintext) >= 4 {
		suffix = plaintext[len(plaintext)-4:]
	}

	var boundAddr *string
	if s.bindAddr && clientAddr != "" {
		boundAddr = &clientAddr
	}

	now := time.Now()
	record := &APIKey{
		ID:         uuid.NewString(),
		OwnerEmail: ownerEmail,
		LookupTag:  s.codec.LookupTag(plaintext),
		Hash:       hash,
		Suffix:     suffix,
		Uses:       0,
		MaxUses:    s.maxUses,
		BoundAddr:  boundAddr,
		ExpiresAt:  now.Add(s.expiry),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	persisted, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().
		Str("key_id", persisted.ID).
		Str("owner", ownerEmail).
		Bool("address_bound", boundAddr != nil).
		Msg("issued api key")

	return persisted, plaintext, nil
}

// VerifyAndConsume resolves the plaintext to a stored key, validates it
// against the request address, and atomically consumes one unit of
// quota. Concurrent callers against the same key serialize on the use
// counter: once uses reaches max-uses no further call succeeds.
func (s *Service) VerifyAndConsume(ctx context.Context, plaintext, clientAddr string) (*Grant, error) {
	if !s.codec.HasPrefix(plaintext) {
		return nil, ErrNotFound
	}

	candidates, err := s.repo.FindByLookupTag(ctx, s.codec.LookupTag(plaintext))
	if err != nil {
		return nil, err
	}

	var key *APIKey
	for i := range candidates {
		if s.codec.Verify(plaintext, candidates[i].Hash) {
			key = &candidates[i]
			break
		}
	}
	if key == nil {
		return nil, ErrNotFound
	}

	for {
		if err := checkUsable(key, time.Now(), clientAddr); err != nil {
			return nil, err
		}

		expected := key.Uses
		consumed, err := s.repo.ConsumeUse(ctx, key.ID, expected, time.Now())
		if err != nil {
			return nil, err
		}
		if consumed {
			return &Grant{KeyID: key.ID, OwnerEmail: key.OwnerEmail}, nil
		}

		// Lost the compare-and-update race; reload and re-check. The
		// counter only ever advances, so this terminates once quota or
		// another terminal state is reached.
		key, err = s.repo.FindByID(ctx, key.ID)
		if err != nil {
			return nil, err
		}
		if key == nil {
			return nil, ErrNotFound
		}
		if key.Uses == expected && key.RevokedAt == nil {
			return nil, fmt.Errorf("consume api key %s: conditional update made no progress", key.ID)
		}
	}
}

// Revoke marks the key revoked. Idempotent and irreversible through
// this interface; the row is kept for audit traceability.
func (s *Service) Revoke(ctx context.Context, ownerEmail, keyID string) error {
	key, err := s.repo.FindByID(ctx, keyID)
	if err != nil {
		return err
	}
	if key == nil || !strings.EqualFold(key.OwnerEmail, ownerEmail) {
		return ErrNotFound
	}

	if err := s.repo.MarkRevoked(ctx, key.ID, time.Now()); err != nil {
		return err
	}

	s.logger.Info().Str("key_id", key.ID).Msg("revoked api key")
	return nil
}

// List returns the owner's keys. Hashes stay internal; callers expose
// only display metadata.
func (s *Service) List(ctx context.Context, ownerEmail string) ([]APIKey, error) {
	return s.repo.ListByOwner(ctx, strings.ToLower(strings.TrimSpace(ownerEmail)))
}

// checkUsable classifies a hash-matched key, in priority order.
func checkUsable(key *APIKey, now time.Time, addr string) error {
	switch {
	case !now.Before(key.ExpiresAt):
		return ErrExpired
	case key.RevokedAt != nil:
		return ErrRevoked
	case key.Uses >= key.MaxUses:
		return ErrQuotaExhausted
	case key.BoundAddr != nil && *key.BoundAddr != addr:
		return ErrAddressMismatch
	}
	return nil
}

package apikey

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// memRepo is an in-memory Repository with the same compare-and-update
// consumption semantics as the gorm implementation.
type memRepo struct {
	mu   sync.Mutex
	keys map[string]*APIKey
}

func newMemRepo() *memRepo {
	return &memRepo{keys: make(map[string]*APIKey)}
}

func (r *memRepo) Create(ctx context.Context, key *APIKey) (*APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *key
	r.keys[key.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memRepo) FindByID(ctx context.Context, id string) (*APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.keys[id]
	if !ok {
		return nil, nil
	}
	cp := *key
	return &cp, nil
}

func (r *memRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []APIKey
	for _, key := range r.keys {
		if key.OwnerEmail == ownerEmail {
			out = append(out, *key)
		}
	}
	return out, nil
}

func (r *memRepo) FindByLookupTag(ctx context.Context, tag string) ([]APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []APIKey
	for _, key := range r.keys {
		if key.LookupTag == tag {
			out = append(out, *key)
		}
	}
	return out, nil
}

func (r *memRepo) ConsumeUse(ctx context.Context, id string, expectedUses int, usedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.keys[id]
	if !ok || key.Uses != expectedUses || key.Uses >= key.MaxUses {
		return false, nil
	}
	key.Uses++
	key.LastUsedAt = &usedAt
	return true, nil
}

func (r *memRepo) MarkRevoked(ctx context.Context, id string, revokedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.keys[id]
	if !ok {
		return nil
	}
	if key.RevokedAt == nil {
		key.RevokedAt = &revokedAt
	}
	return nil
}

func (r *memRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.keys)), nil
}

func (r *memRepo) uses(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys[id].Uses
}

func newTestService(repo Repository, cfg Config) *Service {
	if cfg.Expiry == 0 {
		cfg.Expiry = time.Hour
	}
	if cfg.MaxUses == 0 {
		cfg.MaxUses = 1000
	}
	codec := NewCodec("vetra", bcrypt.MinCost)
	return NewService(repo, codec, cfg, zerolog.Nop())
}

func TestIssueReturnsPlaintextOnce(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, Config{})

	key, plaintext, err := svc.Issue(context.Background(), "User@Example.COM", "10.0.0.1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if key.OwnerEmail != "user@example.com" {
		t.Errorf("owner not case-normalized: %q", key.OwnerEmail)
	}
	if key.Uses != 0 {
		t.Errorf("fresh key uses = %d", key.Uses)
	}
	if key.Hash == plaintext || strings.Contains(key.Hash, plaintext) {
		t.Error("plaintext persisted")
	}
	if key.BoundAddr != nil {
		t.Error("address bound although binding disabled")
	}
	if !strings.HasSuffix(plaintext, key.Suffix) {
		t.Error("display suffix does not match plaintext")
	}
}

func TestIssueBindsAddressWhenEnabled(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, Config{BindAddress: true})

	key, _, err := svc.Issue(context.Background(), "user@example.com", "10.0.0.1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if key.BoundAddr == nil || *key.BoundAddr != "10.0.0.1" {
		t.Errorf("bound address = %v, want 10.0.0.1", key.BoundAddr)
	}
}

func TestVerifyAndConsume(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, Config{})

	key, plaintext, err := svc.Issue(context.Background(), "user@example.com", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	grant, err := svc.VerifyAndConsume(context.Background(), plaintext, "10.0.0.2")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if grant.OwnerEmail != "user@example.com" || grant.KeyID != key.ID {
		t.Errorf("grant mismatch: %+v", grant)
	}
	if got := repo.uses(key.ID); got != 1 {
		t.Errorf("uses = %d, want 1", got)
	}
}

func TestVerifyUnknownKey(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, Config{})

	if _, _, err := svc.Issue(context.Background(), "user@example.com", ""); err != nil {
		t.Fatalf("issue: %v", err)
	}

	codec := NewCodec("vetra", bcrypt.MinCost)
	stranger, _ := codec.Generate()
	if _, err := svc.VerifyAndConsume(context.Background(), stranger, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.VerifyAndConsume(context.Background(), "wrong-prefix-key", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign prefix, got %v", err)
	}
}

func TestQuotaExhaustedExactlyAtLimit(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, Config{MaxUses: 1})

	key, plaintext, err := svc.Issue(context.Background(), "user@example.com", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.VerifyAndConsume(context.Background(), plaintext, ""); err != nil {
		t.Fatalf("first consumption should succeed: %v", err)
	}
	if _, err := svc.VerifyAndConsume(context.Background(), plaintext, ""); !errors.Is(err, ErrQuotaExhausted) {
		t.Errorf("expected ErrQuotaExhausted, got %v", err)
	}
	if got := repo.uses(key.ID); got != 1 {
		t.Errorf("uses advanced past max: %d", got)
	}
}

func TestRevokedKeyRejectedCounterUnchanged(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, Config{})

	key, plaintext, err := svc.Issue(context.Background(), "user@example.com", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := svc.Revoke(context.Background(), "user@example.com", key.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	// idempotent
	if err := svc.Revoke(context.Background(), "user@example.com", key.ID); err != nil {
		t.Fatalf("second revoke: %v", err)
	}

	if _, err := svc.VerifyAndConsume(context.Background(), plaintext, ""); !errors.Is(err, ErrRevoked) {
		t.Errorf("expected ErrRevoked, got %v", err)
	}
	if got := repo.uses(key.ID); got != 0 {
		t.Errorf("revoked key counter changed: %d", got)
	}
}

func TestRevokeForeignKey(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, Config{})

	key, _, err := svc.Issue(context.Background(), "user@example.com", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := svc.Revoke(context.Background(), "other@example.com", key.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign owner, got %v", err)
	}
}

func TestExpiredKey(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, Config{Expiry: -time.Minute})

	_, plaintext, err := svc.Issue(context.Background(), "user@example.com", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.VerifyAndConsume(context.Background(), plaintext, ""); !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestAddressMismatch(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, Config{BindAddress: true})

	key, plaintext, err := svc.Issue(context.Background(), "user@example.com", "10.0.0.1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.VerifyAndConsume(context.Background(), plaintext, "10.9.9.9"); !errors.Is(err, ErrAddressMismatch) {
		t.Errorf("expected ErrAddressMismatch, got %v", err)
	}
	if _, err := svc.VerifyAndConsume(context.Background(), plaintext, "10.0.0.1"); err != nil {
		t.Errorf("bound address rejected: %v", err)
	}
	if got := repo.uses(key.ID); got != 1 {
		t.Errorf("uses = %d, want 1", got)
	}
}

func TestConcurrentConsumptionNeverOvershoots(t *testing.T) {
	const maxUses = 5
	const callers = 20

	repo := newMemRepo()
	svc := newTestService(repo, Config{MaxUses: maxUses})

	key, plaintext, err := svc.Issue(context.Background(), "user@example.com", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var wg sync.WaitGroup
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.VerifyAndConsume(context.Background(), plaintext, "")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, exhausted := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrQuotaExhausted):
			exhausted++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != maxUses {
		t.Errorf("successes = %d, want exactly %d", succeeded, maxUses)
	}
	if succeeded+exhausted != callers {
		t.Errorf("accounted calls = %d, want %d", succeeded+exhausted, callers)
	}
	if got := repo.uses(key.ID); got != maxUses {
		t.Errorf("final uses = %d, want %d", got, maxUses)
	}
}

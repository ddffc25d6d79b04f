package dbschema

import (
	"time"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/apikey"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&APIKey{})
}

// APIKey represents persisted API key metadata. Only the bcrypt hash and
// the truncated lookup tag are stored, never the plaintext secret.
type APIKey struct {
	ID         string     `gorm:"type:uuid;primaryKey"`
	OwnerEmail string     `gorm:"type:varchar(255);not null;index"`
	LookupTag  string     `gorm:"type:varchar(16);not null;index"`
	Hash       string     `gorm:"type:varchar(128);not null"`
	Suffix     string     `gorm:"type:varchar(8);not null"`
	Uses       int        `gorm:"not null;default:0"`
	MaxUses    int        `gorm:"not null"`
	BoundAddr  *string    `gorm:"type:varchar(64)"`
	ExpiresAt  time.Time  `gorm:"not null;index"`
	RevokedAt  *time.Time
	LastUsedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EtoD converts schema model to domain representation.
func (k *APIKey) EtoD() *apikey.APIKey {
	if k == nil {
		return nil
	}
	return &apikey.APIKey{
		ID:         k.ID,
		OwnerEmail: k.OwnerEmail,
		LookupTag:  k.LookupTag,
		Hash:       k.Hash,
		Suffix:     k.Suffix,
		Uses:       k.Uses,
		MaxUses:    k.MaxUses,
		BoundAddr:  k.BoundAddr,
		ExpiresAt:  k.ExpiresAt,
		RevokedAt:  k.RevokedAt,
		LastUsedAt: k.LastUsedAt,
		CreatedAt:  k.CreatedAt,
		UpdatedAt:  k.UpdatedAt,
	}
}

// FromDomain converts domain model to schema representation.
func FromDomain(key *apikey.APIKey) *APIKey {
	if key == nil {
		return nil
	}
	return &APIKey{
		ID:         key.ID,
		OwnerEmail: key.OwnerEmail,
		LookupTag:  key.LookupTag,
		Hash:       key.Hash,
		Suffix:     key.Suffix,
		Uses:       key.Uses,
		MaxUses:    key.MaxUses,
		BoundAddr:  key.BoundAddr,
		ExpiresAt:  key.ExpiresAt,
		RevokedAt:  key.RevokedAt,
		LastUsedAt: key.LastUsedAt,
		CreatedAt:  key.CreatedAt,
		UpdatedAt:  key.UpdatedAt,
	}
}

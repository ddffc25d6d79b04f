package dbschema

import (
	"time"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/audit"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&AuditEntry{})
}

// AuditEntry represents a persisted audit record. Request metadata lives
// only in the ciphertext column.
type AuditEntry struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	KeyID      *string   `gorm:"type:uuid;index"`
	OwnerEmail string    `gorm:"type:varchar(255);not null;index"`
	Endpoint   string    `gorm:"type:varchar(128);not null"`
	Ciphertext []byte    `gorm:"type:bytea;not null"`
	RecordedAt time.Time `gorm:"not null;index"`
}

// EtoD converts schema model to domain representation.
func (e *AuditEntry) EtoD() *audit.Entry {
	if e == nil {
		return nil
	}
	return &audit.Entry{
		ID:         e.ID,
		KeyID:      e.KeyID,
		OwnerEmail: e.OwnerEmail,
		Endpoint:   e.Endpoint,
		Ciphertext: e.Ciphertext,
		RecordedAt: e.RecordedAt,
	}
}

// AuditEntryFromDomain converts domain model to schema representation.
func AuditEntryFromDomain(entry *audit.Entry) *AuditEntry {
	if entry == nil {
		return nil
	}
	return &AuditEntry{
		ID:         entry.ID,
		KeyID:      entry.KeyID,
		OwnerEmail: entry.OwnerEmail,
		Endpoint:   entry.Endpoint,
		Ciphertext: entry.Ciphertext,
		RecordedAt: entry.RecordedAt,
	}
}

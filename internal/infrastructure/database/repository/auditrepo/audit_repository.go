package auditrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/audit"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/database/dbschema"
	"github.com/adarsh20n06-web/vetra-server/internal/utils/platformerrors"
)

// Repository is append-only: entries are never updated or deleted once
// written.
type Repository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.Repository {
	return &Repository{db: db}
}

func (r *Repository) Append(ctx context.Context, entry *audit.Entry) error {
	model := dbschema.AuditEntryFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to append audit entry")
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&dbschema.AuditEntry{}).Count(&count).Error; err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count audit entries")
	}
	return count, nil
}

package apikeyrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/apikey"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/database/dbschema"
	"github.com/adarsh20n06-web/vetra-server/internal/utils/platformerrors"
)

type Repository struct {
	db *gorm.DB
}

func NewAPIKeyRepository(db *gorm.DB) apikey.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, key *apikey.APIKey) (*apikey.APIKey, error) {
	model := dbschema.FromDomain(key)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create api key")
	}
	return model.EtoD(), nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*apikey.APIKey, error) {
	var model dbschema.APIKey
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to fetch api key")
	}
	return model.EtoD(), nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerEmail string) ([]apikey.APIKey, error) {
	var models []dbschema.APIKey
	if err := r.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list api keys")
	}
	result := make([]apikey.APIKey, 0, len(models))
	for _, m := range models {
		if domain := m.EtoD(); domain != nil {
			result = append(result, *domain)
		}
	}
	return result, nil
}

// FindByLookupTag returns every key sharing the tag, revoked and expired
// ones included.
func (r *Repository) FindByLookupTag(ctx context.Context, tag string) ([]apikey.APIKey, error) {
	var models []dbschema.APIKey
	if err := r.db.WithContext(ctx).
		Where("lookup_tag = ?", tag).
		Find(&models).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to fetch api keys by lookup tag")
	}
	result := make([]apikey.APIKey, 0, len(models))
	for _, m := range models {
		if domain := m.EtoD(); domain != nil {
			result = append(result, *domain)
		}
	}
	return result, nil
}

// ConsumeUse increments the use counter only when the stored counter
// still equals expectedUses and quota remains. A zero row count means
// another caller won the race.
func (r *Repository) ConsumeUse(ctx context.Context, id string, expectedUses int, usedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&dbschema.APIKey{}).
		Where("id = ? AND uses = ? AND uses < max_uses AND revoked_at IS NULL", id, expectedUses).
		Updates(map[string]interface{}{
			"uses":         gorm.Expr("uses + 1"),
			"last_used_at": usedAt,
		})
	if res.Error != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerRepository, res.Error, "failed to consume api key use")
	}
	return res.RowsAffected == 1, nil
}

func (r *Repository) MarkRevoked(ctx context.Context, id string, revokedAt time.Time) error {
	updateErr := r.db.WithContext(ctx).Model(&dbschema.APIKey{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", revokedAt).Error
	if updateErr != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, updateErr, "failed to revoke api key")
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&dbschema.APIKey{}).Count(&count).Error; err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count api keys")
	}
	return count, nil
}

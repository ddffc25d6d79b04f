package userrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/user"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/database/dbschema"
	"github.com/adarsh20n06-web/vetra-server/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&entity).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find user by email")
	}
	return entity.EtoD(), nil
}

// Upsert keeps the existing row when the email is already registered;
// only updated_at and the display name move.
func (repo *UserGormRepository) Upsert(ctx context.Context, usr *user.User) (*user.User, error) {
	schemaUser := dbschema.UserFromDomain(usr)

	assignments := map[string]any{
		"name":       schemaUser.Name,
		"updated_at": gorm.Expr("NOW()"),
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(schemaUser).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to upsert user")
	}

	var persisted dbschema.User
	if err := repo.db.WithContext(ctx).
		Where("email = ?", schemaUser.Email).
		First(&persisted).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to reload upserted user")
	}
	return persisted.EtoD(), nil
}

func (repo *UserGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&dbschema.User{}).Count(&count).Error; err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count users")
	}
	return count, nil
}

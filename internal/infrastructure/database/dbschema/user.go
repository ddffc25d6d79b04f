package dbschema

import (
	"time"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/user"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&User{})
}

// User represents a persisted key owner.
type User struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	Email     string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name      *string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EtoD converts schema model to domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}
	return &user.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserFromDomain converts domain model to schema representation.
func UserFromDomain(u *user.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

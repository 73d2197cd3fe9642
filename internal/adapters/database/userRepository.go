package database

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"yatube/internal/core/listing"
	"yatube/internal/core/user"
)

// UserRepositoryDatabase implements UserRepository on gorm.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

// NewUserRepositoryDatabase builds a UserRepositoryDatabase.
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) error {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		return translate(err, "create user %q", u.Username)
	}
	return nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id.String()).First(&u).Error; err != nil {
		return nil, translate(err, "user %s", id)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err, "user %q", username)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) List(ctx context.Context, username string, pg listing.Paginator, requested int) (*listing.Page[*user.User], error) {
	query := repo.db.WithContext(ctx).Model(&user.User{})
	if username != "" {
		query = query.Where("username = ?", username)
	}
	out, err := page[*user.User](query, []string{"username ASC"}, nil, pg, requested)
	if err != nil {
		return nil, translate(err, "list users")
	}
	return out, nil
}

package database

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"yatube/internal/core/group"
	"yatube/internal/core/listing"
)

// GroupRepositoryDatabase is the gorm-backed GroupRepository.
type GroupRepositoryDatabase struct {
	db *gorm.DB
}

func NewGroupRepositoryDatabase(db *gorm.DB) *GroupRepositoryDatabase {
	return &GroupRepositoryDatabase{db: db}
}

// Create relies on the unique slug index; a taken slug comes back as ErrConflict.
func (repo *GroupRepositoryDatabase) Create(ctx context.Context, g *group.Group) error {
	if err := repo.db.WithContext(ctx).Create(g).Error; err != nil {
		return translate(err, "create group %q", g.Slug)
	}
	return nil
}

func (repo *GroupRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*group.Group, error) {
	var g group.Group
	if err := repo.db.WithContext(ctx).Where("id = ?", id.String()).First(&g).Error; err != nil {
		return nil, translate(err, "group %s", id)
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) FindBySlug(ctx context.Context, slug string) (*group.Group, error) {
	var g group.Group
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, translate(err, "group %q", slug)
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) List(ctx context.Context, pg listing.Paginator, requested int) (*listing.Page[*group.Group], error) {
	query := repo.db.WithContext(ctx).Model(&group.Group{})
	out, err := page[*group.Group](query, []string{"title ASC", "slug ASC"}, nil, pg, requested)
	if err != nil {
		return nil, translate(err, "list groups")
	}
	return out, nil
}

package group

import (
	"context"

	"github.com/gofrs/uuid"

	"yatube/internal/core/group"
	"yatube/internal/core/listing"
)

// GroupRepository persists groups. Slugs are unique.
type GroupRepository interface {
	Create(ctx context.Context, g *group.Group) error
	FindByID(ctx context.Context, id uuid.UUID) (*group.Group, error)
	FindBySlug(ctx context.Context, slug string) (*group.Group, error)
	List(ctx context.Context, pg listing.Paginator, page int) (*listing.Page[*group.Group], error)
}

// GroupDTO is the wire form of a group.
type GroupDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// NewGroupDTO maps a group entity to its wire form.
func NewGroupDTO(g *group.Group) *GroupDTO {
	return &GroupDTO{
		ID:          g.ID.String(),
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}

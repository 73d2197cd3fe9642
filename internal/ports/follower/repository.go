package follower

import (
	"context"

	"github.com/gofrs/uuid"

	"yatube/internal/core/follower"
	"yatube/internal/core/listing"
)

// FollowerRepository stores follow edges. Duplicate edges are not rejected.
type FollowerRepository interface {
	Create(ctx context.Context, f *follower.Follow) error
	// FindEdge returns the first edge user→author.
	FindEdge(ctx context.Context, userID, authorID uuid.UUID) (*follower.Follow, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q listing.FollowQuery, pg listing.Paginator, page int) (*listing.Page[*follower.Follow], error)
	// FollowingAuthorIDs returns the distinct authors userID follows.
	FollowingAuthorIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// FollowerDTO names both ends of a follow edge by username.
type FollowerDTO struct {
	ID     string  `json:"id"`
	User   *string `json:"user"`
	Author string  `json:"author"`
}

// NewFollowerDTO expects User and Author to be loaded.
func NewFollowerDTO(f *follower.Follow) *FollowerDTO {
	dto := &FollowerDTO{
		ID:     f.ID.String(),
		Author: f.Author.Username,
	}
	if f.User != nil {
		name := f.User.Username
		dto.User = &name
	}
	return dto
}

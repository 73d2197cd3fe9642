package post

import (
	"context"
	"time"

	"github.com/gofrs/uuid"

	"yatube/internal/core/listing"
	"yatube/internal/core/post"
)

// PostRepository stores posts. List applies the query as one filtered,
// pub_date-descending query and pages it with pg.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	Update(ctx context.Context, p *post.Post) error
	// DeleteWithComments removes the post and its comments atomically.
	DeleteWithComments(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q listing.PostQuery, pg listing.Paginator, page int) (*listing.Page[*post.Post], error)
}

// PostDTO is the wire form of a post; Author is the username.
type PostDTO struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Author  string    `json:"author"`
	Group   *string   `json:"group"`
	Image   *string   `json:"image"`
}

// NewPostDTO expects p.Author to be loaded.
func NewPostDTO(p *post.Post) *PostDTO {
	dto := &PostDTO{
		ID:      p.ID.String(),
		Text:    p.Text,
		PubDate: p.PubDate,
		Author:  p.Author.Username,
		Image:   p.Image,
	}
	if p.GroupID != nil {
		gid := p.GroupID.String()
		dto.Group = &gid
	}
	return dto
}

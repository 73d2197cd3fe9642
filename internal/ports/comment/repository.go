package comment

import (
	"context"
	"time"

	"github.com/gofrs/uuid"

	"yatube/internal/core/comment"
	"yatube/internal/core/listing"
)

// CommentRepository persists comments, always scoped to their post.
type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) error
	// FindByID only finds the comment under the given post.
	FindByID(ctx context.Context, postID, id uuid.UUID) (*comment.Comment, error)
	Update(ctx context.Context, c *comment.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPost(ctx context.Context, postID uuid.UUID, pg listing.Paginator, page int) (*listing.Page[*comment.Comment], error)
}

// CommentDTO is the wire form of a comment.
type CommentDTO struct {
	ID      string    `json:"id"`
	Post    string    `json:"post"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// NewCommentDTO maps a comment entity to its wire form.
func NewCommentDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:      c.ID.String(),
		Post:    c.PostID.String(),
		Author:  c.Author.Username,
		Text:    c.Text,
		Created: c.Created,
	}
}

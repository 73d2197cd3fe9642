package database

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/core/comment"
	"yatube/internal/core/listing"
)

var commentOrder = []string{"comments.created DESC", "comments.id DESC"}

// CommentRepositoryDatabase is the gorm-backed CommentRepository.
type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) error {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return translate(err, "create comment")
	}
	return nil
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, postID, id uuid.UUID) (*comment.Comment, error) {
	var c comment.Comment
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND post_id = ?", id.String(), postID.String()).
		First(&c).Error; err != nil {
		return nil, translate(err, "comment %s", id)
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) Update(ctx context.Context, c *comment.Comment) error {
	if err := repo.db.WithContext(ctx).
		Model(&comment.Comment{ID: c.ID}).
		Update("text", c.Text).Error; err != nil {
		return translate(err, "update comment %s", c.ID)
	}
	return nil
}

func (repo *CommentRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	res := repo.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&comment.Comment{})
	if res.Error != nil {
		return translate(res.Error, "delete comment %s", id)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "comment %s", id)
	}
	return nil
}

func (repo *CommentRepositoryDatabase) ListByPost(ctx context.Context, postID uuid.UUID, pg listing.Paginator, requested int) (*listing.Page[*comment.Comment], error) {
	query := repo.db.WithContext(ctx).Model(&comment.Comment{}).Where("comments.post_id = ?", postID.String())
	out, err := page[*comment.Comment](query, commentOrder, []string{"Author"}, pg, requested)
	if err != nil {
		return nil, translate(err, "list comments of post %s", postID)
	}
	return out, nil
}

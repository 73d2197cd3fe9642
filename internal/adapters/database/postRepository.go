package database

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/core/comment"
	"yatube/internal/core/listing"
	"yatube/internal/core/post"
)

var (
	postOrder    = []string{"posts.pub_date DESC", "posts.id DESC"}
	postPreloads = []string{"Author", "Group"}
)

// PostRepositoryDatabase implements PostRepository on gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase builds a PostRepositoryDatabase.
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) error {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return translate(err, "create post")
	}
	return nil
}

// FindByID loads the post with its author and group.
func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", id.String()).
		First(&p).Error; err != nil {
		return nil, translate(err, "post %s", id)
	}
	return &p, nil
}

// Update writes the mutable columns only; author and pub_date never change.
func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	res := repo.db.WithContext(ctx).
		Model(&post.Post{ID: p.ID}).
		Select("text", "group_id", "image").
		Updates(map[string]any{
			"text":     p.Text,
			"group_id": nullableID(p.GroupID),
			"image":    p.Image,
		})
	if res.Error != nil {
		return translate(res.Error, "update post %s", p.ID)
	}
	return nil
}

// DeleteWithComments removes the post and its comments in one transaction.
func (repo *PostRepositoryDatabase) DeleteWithComments(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id.String()).Delete(&comment.Comment{}).Error; err != nil {
			return translate(err, "delete comments of post %s", id)
		}
		res := tx.Where("id = ?", id.String()).Delete(&post.Post{})
		if res.Error != nil {
			return translate(res.Error, "delete post %s", id)
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "post %s", id)
		}
		return nil
	})
}

func (repo *PostRepositoryDatabase) List(ctx context.Context, q listing.PostQuery, pg listing.Paginator, requested int) (*listing.Page[*post.Post], error) {
	if q.RestrictAuthors && len(q.AuthorIn) == 0 {
		return listing.NewPage[*post.Post](pg.Window(0, requested)), nil
	}
	query := repo.db.WithContext(ctx).Model(&post.Post{}).Scopes(postFilter(q))
	out, err := page[*post.Post](query, postOrder, postPreloads, pg, requested)
	if err != nil {
		return nil, translate(err, "list posts")
	}
	return out, nil
}

const usernameSubquery = "SELECT id FROM users WHERE username = ?"

func postFilter(q listing.PostQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.AuthorID != nil {
			db = db.Where("posts.author_id = ?", q.AuthorID.String())
		}
		if q.AuthorUsername != "" {
			db = db.Where("posts.author_id IN ("+usernameSubquery+")", q.AuthorUsername)
		}
		if q.GroupID != nil {
			db = db.Where("posts.group_id = ?", q.GroupID.String())
		}
		if q.RestrictAuthors {
			db = db.Where("posts.author_id IN ?", uuidStrings(q.AuthorIn))
		}
		if q.Search != "" {
			db = db.Where(
				"("+containsExpr(db, "posts.text")+
					" OR posts.author_id IN (SELECT id FROM users WHERE "+containsExpr(db, "users.username")+"))",
				q.Search, q.Search,
			)
		}
		return db
	}
}

func nullableID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

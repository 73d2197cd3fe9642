package database

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/core/follower"
	"yatube/internal/core/listing"
)

var followOrder = []string{"follows.created_at DESC", "follows.id DESC"}

// FollowerRepositoryDatabase implements FollowerRepository on gorm.
type FollowerRepositoryDatabase struct {
	db *gorm.DB
}

// NewFollowerRepositoryDatabase builds a FollowerRepositoryDatabase.
func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{db: db}
}

func (repo *FollowerRepositoryDatabase) Create(ctx context.Context, f *follower.Follow) error {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error; err != nil {
		return translate(err, "create follow")
	}
	return nil
}

func (repo *FollowerRepositoryDatabase) FindEdge(ctx context.Context, userID, authorID uuid.UUID) (*follower.Follow, error) {
	var f follower.Follow
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID.String(), authorID.String()).
		Order("created_at ASC").
		First(&f).Error; err != nil {
		return nil, translate(err, "follow %s -> %s", userID, authorID)
	}
	return &f, nil
}

func (repo *FollowerRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	res := repo.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&follower.Follow{})
	if res.Error != nil {
		return translate(res.Error, "delete follow %s", id)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "follow %s", id)
	}
	return nil
}

func (repo *FollowerRepositoryDatabase) List(ctx context.Context, q listing.FollowQuery, pg listing.Paginator, requested int) (*listing.Page[*follower.Follow], error) {
	query := repo.db.WithContext(ctx).Model(&follower.Follow{})
	if q.UserUsername != "" {
		query = query.Where("follows.user_id IN ("+usernameSubquery+")", q.UserUsername)
	}
	if q.AuthorUsername != "" {
		query = query.Where("follows.author_id IN ("+usernameSubquery+")", q.AuthorUsername)
	}
	if q.Search != "" {
		query = query.Where(
			"(follows.user_id IN ("+usernameSubquery+") OR follows.author_id IN ("+usernameSubquery+"))",
			q.Search, q.Search,
		)
	}
	out, err := page[*follower.Follow](query, followOrder, []string{"User", "Author"}, pg, requested)
	if err != nil {
		return nil, translate(err, "list follows")
	}
	return out, nil
}

// FollowingAuthorIDs returns each followed author once.
func (repo *FollowerRepositoryDatabase) FollowingAuthorIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var raw []string
	if err := repo.db.WithContext(ctx).
		Model(&follower.Follow{}).
		Where("user_id = ?", userID.String()).
		Distinct().
		Pluck("author_id", &raw).Error; err != nil {
		return nil, translate(err, "following of %s", userID)
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.FromString(s)
		if err != nil {
			return nil, translate(err, "following of %s", userID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

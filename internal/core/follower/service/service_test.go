package followerapp

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/core/actor"
	"yatube/internal/core/apperror"
	"yatube/internal/core/listing"
	"yatube/internal/testutil"
)

// recordingCache only records invalidations.
type recordingCache struct {
	invalidated []uuid.UUID
	err         error
}

func (c *recordingCache) Get(context.Context, uuid.UUID) ([]uuid.UUID, int64, bool, error) {
	return nil, 0, false, nil
}

func (c *recordingCache) Set(context.Context, uuid.UUID, int64, []uuid.UUID) error { return nil }

func (c *recordingCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	return c.err
}

type fixture struct {
	db    *gorm.DB
	cache *recordingCache
	svc   *FollowerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	cache := &recordingCache{}
	svc := NewFollowerService(
		dbadapter.NewFollowerRepositoryDatabase(db),
		dbadapter.NewUserRepositoryDatabase(db),
		cache,
		zap.NewNop(),
	)
	return &fixture{db: db, cache: cache, svc: svc}
}

func (f *fixture) actor(t *testing.T, username string) actor.Actor {
	u := testutil.CreateUser(t, f.db, username)
	return actor.New(u.ID, u.Username)
}

func TestCreateFollowForcesFollower(t *testing.T) {
	f := newFixture(t)
	leo := f.actor(t, "leo")
	kate := f.actor(t, "kate")

	dto, err := f.svc.CreateFollow(context.Background(), leo, CreateFollowInput{Author: "kate"})
	require.NoError(t, err)
	require.NotNil(t, dto.User)
	assert.Equal(t, "leo", *dto.User)
	assert.Equal(t, "kate", dto.Author)
	assert.Equal(t, []uuid.UUID{leo.ID}, f.cache.invalidated)

	following, err := f.svc.IsFollowing(context.Background(), leo, kate.ID)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = f.svc.IsFollowing(context.Background(), kate, leo.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestCreateFollowErrors(t *testing.T) {
	f := newFixture(t)
	leo := f.actor(t, "leo")
	f.actor(t, "kate")

	_, err := f.svc.CreateFollow(context.Background(), actor.Anonymous(), CreateFollowInput{Author: "kate"})
	assert.True(t, errors.Is(err, apperror.ErrPermission))

	_, err = f.svc.CreateFollow(context.Background(), leo, CreateFollowInput{Author: "ghost"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = f.svc.CreateFollow(context.Background(), leo, CreateFollowInput{})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Empty(t, f.cache.invalidated)
}

func TestCreateFollowAllowsSelfAndDuplicates(t *testing.T) {
	f := newFixture(t)
	leo := f.actor(t, "leo")
	f.actor(t, "kate")

	_, err := f.svc.CreateFollow(context.Background(), leo, CreateFollowInput{Author: "leo"})
	require.NoError(t, err)
	_, err = f.svc.CreateFollow(context.Background(), leo, CreateFollowInput{Author: "kate"})
	require.NoError(t, err)
	_, err = f.svc.CreateFollow(context.Background(), leo, CreateFollowInput{Author: "kate"})
	require.NoError(t, err)

	page, err := f.svc.ListFollows(context.Background(), listing.FollowQuery{UserUsername: "leo"}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
}

func TestDeleteFollow(t *testing.T) {
	f := newFixture(t)
	leo := f.actor(t, "leo")
	kate := f.actor(t, "kate")
	_, err := f.svc.CreateFollow(context.Background(), leo, CreateFollowInput{Author: "kate"})
	require.NoError(t, err)
	_, err = f.svc.CreateFollow(context.Background(), leo, CreateFollowInput{Author: "kate"})
	require.NoError(t, err)

	err = f.svc.DeleteFollow(context.Background(), actor.Anonymous(), "kate")
	assert.True(t, errors.Is(err, apperror.ErrPermission))

	// one edge at a time
	require.NoError(t, f.svc.DeleteFollow(context.Background(), leo, "kate"))
	following, err := f.svc.IsFollowing(context.Background(), leo, kate.ID)
	require.NoError(t, err)
	assert.True(t, following)

	require.NoError(t, f.svc.DeleteFollow(context.Background(), leo, "kate"))
	following, err = f.svc.IsFollowing(context.Background(), leo, kate.ID)
	require.NoError(t, err)
	assert.False(t, following)

	err = f.svc.DeleteFollow(context.Background(), leo, "kate")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	err = f.svc.DeleteFollow(context.Background(), leo, "ghost")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeleteFollowSurvivesCacheFailure(t *testing.T) {
	f := newFixture(t)
	leo := f.actor(t, "leo")
	f.actor(t, "kate")
	f.cache.err = errors.New("redis down")

	_, err := f.svc.CreateFollow(context.Background(), leo, CreateFollowInput{Author: "kate"})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteFollow(context.Background(), leo, "kate"))
	assert.Len(t, f.cache.invalidated, 2)
}

func TestListFollowsFilters(t *testing.T) {
	f := newFixture(t)
	leo := f.actor(t, "leo")
	kate := f.actor(t, "kate")
	f.actor(t, "bob")
	for _, pair := range []struct {
		who    actor.Actor
		author string
	}{{leo, "kate"}, {leo, "bob"}, {kate, "bob"}, {kate, "leo"}} {
		_, err := f.svc.CreateFollow(context.Background(), pair.who, CreateFollowInput{Author: pair.author})
		require.NoError(t, err)
	}

	page, err := f.svc.ListFollows(context.Background(), listing.FollowQuery{}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Count)

	page, err = f.svc.ListFollows(context.Background(), listing.FollowQuery{AuthorUsername: "bob"}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)

	page, err = f.svc.ListFollows(context.Background(), listing.FollowQuery{UserUsername: "kate", AuthorUsername: "leo"}, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].User)
	assert.Equal(t, "kate", *page.Items[0].User)
	assert.Equal(t, "leo", page.Items[0].Author)

	// search matches either side exactly
	page, err = f.svc.ListFollows(context.Background(), listing.FollowQuery{Search: "leo"}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)

	page, err = f.svc.ListFollows(context.Background(), listing.FollowQuery{Search: "le"}, 1)
	require.NoError(t, err)
	assert.Zero(t, page.Count)
}

func TestIsFollowingAnonymous(t *testing.T) {
	f := newFixture(t)
	following, err := f.svc.IsFollowing(context.Background(), actor.Anonymous(), uuid.Must(uuid.NewV4()))
	require.NoError(t, err)
	assert.False(t, following)
}

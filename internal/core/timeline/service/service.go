package timelineapp

import (
	"context"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"yatube/internal/core/actor"
	"yatube/internal/core/listing"
	"yatube/internal/core/policy"
	followerPort "yatube/internal/ports/follower"
	postPort "yatube/internal/ports/post"
	timelinePort "yatube/internal/ports/timeline"
)

// TimelineService composes the "following" feed of an actor.
type TimelineService struct {
	PostRepository     postPort.PostRepository
	FollowerRepository followerPort.FollowerRepository
	// Cache is optional.
	Cache  timelinePort.FollowingCache
	Logger *zap.Logger
}

// NewTimelineService wires a TimelineService; cache may be nil.
func NewTimelineService(
	postRepo postPort.PostRepository,
	followerRepo followerPort.FollowerRepository,
	cache timelinePort.FollowingCache,
	logger *zap.Logger,
) *TimelineService {
	return &TimelineService{
		PostRepository:     postRepo,
		FollowerRepository: followerRepo,
		Cache:              cache,
		Logger:             logger,
	}
}

// FollowIndex returns one page of posts by the authors a follows, newest
// first. Following nobody yields an empty page.
func (s *TimelineService) FollowIndex(ctx context.Context, a actor.Actor, page int) (*listing.Page[*postPort.PostDTO], error) {
	if err := policy.RequireAuthenticated(a); err != nil {
		return nil, err
	}
	authors, err := s.following(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return listing.NewPage[*postPort.PostDTO](listing.Default.Window(0, page)), nil
	}

	posts, err := s.PostRepository.List(ctx, listing.ByAuthors(authors), listing.Default, page)
	if err != nil {
		return nil, err
	}
	return listing.MapPage(posts, postPort.NewPostDTO), nil
}

// following returns the distinct authors userID follows, from the cache when possible.
// The cache is only filled when its read succeeded, since the write is
// conditional on the version that read observed.
func (s *TimelineService) following(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var (
		version  int64
		writable bool
	)
	if s.Cache != nil {
		ids, v, ok, err := s.Cache.Get(ctx, userID)
		switch {
		case err != nil:
			s.Logger.Warn("Following cache read failed", zap.String("user_id", userID.String()), zap.Error(err))
		case ok:
			return ids, nil
		default:
			version, writable = v, true
		}
	}

	ids, err := s.FollowerRepository.FollowingAuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if writable {
		if err := s.Cache.Set(ctx, userID, version, ids); err != nil {
			s.Logger.Warn("Following cache write failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	return ids, nil
}

package followerapp

import (
	"context"
	"strings"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"yatube/internal/core/actor"
	"yatube/internal/core/apperror"
	followerEntity "yatube/internal/core/follower"
	"yatube/internal/core/listing"
	"yatube/internal/core/policy"
	followerPort "yatube/internal/ports/follower"
	timelinePort "yatube/internal/ports/timeline"
	userPort "yatube/internal/ports/user"
)

// CreateFollowInput names the author to follow by username; the follower is
// always the actor.
type CreateFollowInput struct {
	Author string `json:"author" validate:"required"`
}

// FollowerService manages follow edges and keeps the following cache in step.
type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
	// Cache is optional.
	Cache  timelinePort.FollowingCache
	Logger *zap.Logger
}

// NewFollowerService wires a FollowerService; cache may be nil.
func NewFollowerService(
	repo followerPort.FollowerRepository,
	userRepo userPort.UserRepository,
	cache timelinePort.FollowingCache,
	logger *zap.Logger,
) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
		Cache:              cache,
		Logger:             logger,
	}
}

// CreateFollow adds the edge a→author. Self-follows and repeated follows
// are accepted.
func (s *FollowerService) CreateFollow(ctx context.Context, a actor.Actor, in CreateFollowInput) (*followerPort.FollowerDTO, error) {
	if err := policy.RequireAuthenticated(a); err != nil {
		return nil, err
	}
	in.Author = strings.TrimSpace(in.Author)
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}
	author, err := s.UserRepository.FindByUsername(ctx, in.Author)
	if err != nil {
		return nil, err
	}

	follower := a.ID
	f := &followerEntity.Follow{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   &follower,
		AuthorID: author.ID,
	}
	if err := s.FollowerRepository.Create(ctx, f); err != nil {
		return nil, err
	}
	s.invalidate(ctx, a.ID)

	s.Logger.Info("Follow created", zap.Stringer("actor", a), zap.String("author", author.Username))
	username := a.Username
	return &followerPort.FollowerDTO{ID: f.ID.String(), User: &username, Author: author.Username}, nil
}

// DeleteFollow removes one edge a→username; a missing edge is ErrNotFound.
func (s *FollowerService) DeleteFollow(ctx context.Context, a actor.Actor, username string) error {
	if err := policy.RequireAuthenticated(a); err != nil {
		return err
	}
	author, err := s.UserRepository.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	edge, err := s.FollowerRepository.FindEdge(ctx, a.ID, author.ID)
	if err != nil {
		return err
	}
	if err := policy.Check(a, policy.Delete, edge); err != nil {
		return err
	}
	if err := s.FollowerRepository.Delete(ctx, edge.ID); err != nil {
		return err
	}
	s.invalidate(ctx, a.ID)

	s.Logger.Info("Follow deleted", zap.Stringer("actor", a), zap.String("author", author.Username))
	return nil
}

// ListFollows pages through follow edges, optionally filtered by usernames.
func (s *FollowerService) ListFollows(ctx context.Context, q listing.FollowQuery, page int) (*listing.Page[*followerPort.FollowerDTO], error) {
	follows, err := s.FollowerRepository.List(ctx, q, listing.Default, page)
	if err != nil {
		return nil, err
	}
	return listing.MapPage(follows, followerPort.NewFollowerDTO), nil
}

// IsFollowing reports whether a follows authorID. Anonymous actors follow nobody.
func (s *FollowerService) IsFollowing(ctx context.Context, a actor.Actor, authorID uuid.UUID) (bool, error) {
	if !a.Authenticated {
		return false, nil
	}
	ids, err := s.FollowerRepository.FollowingAuthorIDs(ctx, a.ID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (s *FollowerService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, userID); err != nil {
		s.Logger.Warn("Could not invalidate following cache", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

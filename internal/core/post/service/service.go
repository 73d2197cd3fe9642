package postapp

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"yatube/internal/core/actor"
	"yatube/internal/core/apperror"
	"yatube/internal/core/field"
	"yatube/internal/core/listing"
	postEntity "yatube/internal/core/post"
	"yatube/internal/core/policy"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

// CreatePostInput is the client-controlled part of a new post. Author and
// pub_date are never taken from the client.
type CreatePostInput struct {
	Text  string  `json:"text"`
	Group *string `json:"group"`
	Image *string `json:"image" validate:"omitempty,max=255"`
}

// UpdatePostInput carries the fields a client sent; absent fields keep
// their current value.
type UpdatePostInput struct {
	Text  field.Optional[string] `json:"text"`
	Group field.Optional[string] `json:"group"`
	Image field.Optional[string] `json:"image"`
}

// PostService implements post use cases. Every call takes the acting user explicitly.
type PostService struct {
	PostRepository  postPort.PostRepository
	GroupRepository groupPort.GroupRepository
	UserRepository  userPort.UserRepository
	Logger          *zap.Logger
	Now             func() time.Time
}

// NewPostService wires a PostService.
func NewPostService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:  postRepo,
		GroupRepository: groupRepo,
		UserRepository:  userRepo,
		Logger:          logger,
		Now:             time.Now,
	}
}

// CreatePost stores a new post authored by a.
func (s *PostService) CreatePost(ctx context.Context, a actor.Actor, in CreatePostInput) (*postPort.PostDTO, error) {
	if err := policy.Check(a, policy.Create, nil); err != nil {
		return nil, err
	}
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, apperror.Invalid("text", apperror.MsgRequired)
	}
	groupID, err := s.resolveGroup(ctx, in.Group)
	if err != nil {
		return nil, err
	}

	p := &postEntity.Post{
		ID:       uuid.Must(uuid.NewV4()),
		Text:     text,
		PubDate:  s.Now().UTC(),
		AuthorID: a.ID,
		GroupID:  groupID,
		Image:    in.Image,
	}
	if err := s.PostRepository.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Author.ID = a.ID
	p.Author.Username = a.Username

	s.Logger.Info("Post created", zap.String("post_id", p.ID.String()), zap.Stringer("actor", a))
	return postPort.NewPostDTO(p), nil
}

// GetPost returns a single post. Ids that do not parse are not found.
func (s *PostService) GetPost(ctx context.Context, id string) (*postPort.PostDTO, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return postPort.NewPostDTO(p), nil
}

// UpdatePost applies in to a post owned by a. A full update (partial=false)
// must carry text; a partial one may carry any subset of fields.
func (s *PostService) UpdatePost(ctx context.Context, a actor.Actor, id string, in UpdatePostInput, partial bool) (*postPort.PostDTO, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(a, policy.Update, p); err != nil {
		return nil, err
	}

	if !partial && !in.Text.Set {
		return nil, apperror.Invalid("text", apperror.MsgRequired)
	}
	if in.Text.Set {
		if in.Text.Value == nil {
			return nil, apperror.Invalid("text", apperror.MsgNull)
		}
		text := strings.TrimSpace(*in.Text.Value)
		if text == "" {
			return nil, apperror.Blank("text")
		}
		p.Text = text
	}
	if in.Group.Set {
		groupID, err := s.resolveGroup(ctx, in.Group.Value)
		if err != nil {
			return nil, err
		}
		p.GroupID = groupID
	}
	if in.Image.Set {
		if in.Image.Value != nil && len(*in.Image.Value) > 255 {
			return nil, apperror.Invalid("image", "Ensure this field has no more than 255 characters.")
		}
		p.Image = in.Image.Value
	}

	if err := s.PostRepository.Update(ctx, p); err != nil {
		return nil, err
	}
	s.Logger.Info("Post updated", zap.String("post_id", p.ID.String()), zap.Stringer("actor", a))
	return postPort.NewPostDTO(p), nil
}

// DeletePost removes a post owned by a together with its comments.
func (s *PostService) DeletePost(ctx context.Context, a actor.Actor, id string) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Check(a, policy.Delete, p); err != nil {
		return err
	}
	if err := s.PostRepository.DeleteWithComments(ctx, p.ID); err != nil {
		return err
	}
	s.Logger.Info("Post deleted", zap.String("post_id", p.ID.String()), zap.Stringer("actor", a))
	return nil
}

// ListPosts returns one page of posts matching q, newest first.
func (s *PostService) ListPosts(ctx context.Context, q listing.PostQuery, page int) (*listing.Page[*postPort.PostDTO], error) {
	posts, err := s.PostRepository.List(ctx, q, listing.Default, page)
	if err != nil {
		return nil, err
	}
	return listing.MapPage(posts, postPort.NewPostDTO), nil
}

// ListGroupPosts pages through the 12 most recent posts of a group.
func (s *PostService) ListGroupPosts(ctx context.Context, slug string, page int) (*groupPort.GroupDTO, *listing.Page[*postPort.PostDTO], error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	pg := listing.Paginator{PageSize: listing.DefaultPageSize, Cap: listing.GroupPostsCap}
	posts, err := s.PostRepository.List(ctx, listing.PostQuery{GroupID: &g.ID}, pg, page)
	if err != nil {
		return nil, nil, err
	}
	return groupPort.NewGroupDTO(g), listing.MapPage(posts, postPort.NewPostDTO), nil
}

// ListAuthorPosts pages through the posts of one author, for profile pages.
func (s *PostService) ListAuthorPosts(ctx context.Context, username string, page int) (*userPort.UserDTO, *listing.Page[*postPort.PostDTO], error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.PostRepository.List(ctx, listing.PostQuery{AuthorID: &u.ID}, listing.Default, page)
	if err != nil {
		return nil, nil, err
	}
	return userPort.NewUserDTO(u), listing.MapPage(posts, postPort.NewPostDTO), nil
}

func (s *PostService) find(ctx context.Context, id string) (*postEntity.Post, error) {
	pid, err := uuid.FromString(id)
	if err != nil {
		return nil, errors.Wrapf(apperror.ErrNotFound, "post %q", id)
	}
	return s.PostRepository.FindByID(ctx, pid)
}

// resolveGroup turns a client-supplied group id into a reference; nil clears it.
func (s *PostService) resolveGroup(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	gid, err := uuid.FromString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperror.Invalid("group", "Must be a valid UUID.")
	}
	g, err := s.GroupRepository.FindByID(ctx, gid)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Invalid("group", `Invalid pk "`+gid.String()+`" - object does not exist.`)
	}
	if err != nil {
		return nil, err
	}
	return &g.ID, nil
}

package commentapp

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"yatube/internal/core/actor"
	"yatube/internal/core/apperror"
	commentEntity "yatube/internal/core/comment"
	"yatube/internal/core/field"
	"yatube/internal/core/listing"
	"yatube/internal/core/policy"
	commentPort "yatube/internal/ports/comment"
	postPort "yatube/internal/ports/post"
)

// CreateCommentInput is the client-controlled part of a comment; the post
// comes from the path and the author from the actor.
type CreateCommentInput struct {
	Text string `json:"text"`
}

// UpdateCommentInput replaces or, when partial, patches the comment text.
type UpdateCommentInput struct {
	Text field.Optional[string] `json:"text"`
}

// CommentService implements comment use cases under a post.
type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	Logger            *zap.Logger
	Now               func() time.Time
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository, logger *zap.Logger) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		Logger:            logger,
		Now:               time.Now,
	}
}

// CreateComment adds a comment by a under an existing post.
func (s *CommentService) CreateComment(ctx context.Context, a actor.Actor, postID string, in CreateCommentInput) (*commentPort.CommentDTO, error) {
	pid, err := s.existingPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(a, policy.Create, nil); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, apperror.Invalid("text", apperror.MsgRequired)
	}

	c := &commentEntity.Comment{
		ID:       uuid.Must(uuid.NewV4()),
		PostID:   pid,
		AuthorID: a.ID,
		Text:     text,
		Created:  s.Now().UTC(),
	}
	if err := s.CommentRepository.Create(ctx, c); err != nil {
		return nil, err
	}
	c.Author.ID = a.ID
	c.Author.Username = a.Username

	s.Logger.Info("Comment created", zap.String("comment_id", c.ID.String()), zap.String("post_id", pid.String()), zap.Stringer("actor", a))
	return commentPort.NewCommentDTO(c), nil
}

func (s *CommentService) GetComment(ctx context.Context, postID, id string) (*commentPort.CommentDTO, error) {
	c, err := s.find(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	return commentPort.NewCommentDTO(c), nil
}

// UpdateComment changes the text of a comment owned by a.
func (s *CommentService) UpdateComment(ctx context.Context, a actor.Actor, postID, id string, in UpdateCommentInput, partial bool) (*commentPort.CommentDTO, error) {
	c, err := s.find(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(a, policy.Update, c); err != nil {
		return nil, err
	}
	if !in.Text.Set {
		if partial {
			return commentPort.NewCommentDTO(c), nil
		}
		return nil, apperror.Invalid("text", apperror.MsgRequired)
	}
	if in.Text.Value == nil {
		return nil, apperror.Invalid("text", apperror.MsgNull)
	}
	text := strings.TrimSpace(*in.Text.Value)
	if text == "" {
		return nil, apperror.Blank("text")
	}
	c.Text = text

	if err := s.CommentRepository.Update(ctx, c); err != nil {
		return nil, err
	}
	s.Logger.Info("Comment updated", zap.String("comment_id", c.ID.String()), zap.Stringer("actor", a))
	return commentPort.NewCommentDTO(c), nil
}

// DeleteComment is reserved to the comment author.
func (s *CommentService) DeleteComment(ctx context.Context, a actor.Actor, postID, id string) error {
	c, err := s.find(ctx, postID, id)
	if err != nil {
		return err
	}
	if err := policy.Check(a, policy.Delete, c); err != nil {
		return err
	}
	if err := s.CommentRepository.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.Logger.Info("Comment deleted", zap.String("comment_id", c.ID.String()), zap.Stringer("actor", a))
	return nil
}

// ListComments pages through the comments of a post, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID string, page int) (*listing.Page[*commentPort.CommentDTO], error) {
	pid, err := s.existingPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.CommentRepository.ListByPost(ctx, pid, listing.Default, page)
	if err != nil {
		return nil, err
	}
	return listing.MapPage(comments, commentPort.NewCommentDTO), nil
}

func (s *CommentService) existingPost(ctx context.Context, postID string) (uuid.UUID, error) {
	pid, err := uuid.FromString(postID)
	if err != nil {
		return uuid.Nil, errors.Wrapf(apperror.ErrNotFound, "post %q", postID)
	}
	p, err := s.PostRepository.FindByID(ctx, pid)
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

func (s *CommentService) find(ctx context.Context, postID, id string) (*commentEntity.Comment, error) {
	pid, err := uuid.FromString(postID)
	if err != nil {
		return nil, errors.Wrapf(apperror.ErrNotFound, "post %q", postID)
	}
	cid, err := uuid.FromString(id)
	if err != nil {
		return nil, errors.Wrapf(apperror.ErrNotFound, "comment %q", id)
	}
	return s.CommentRepository.FindByID(ctx, pid, cid)
}

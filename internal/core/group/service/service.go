package groupapp

import (
	"context"
	"regexp"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"yatube/internal/core/apperror"
	groupEntity "yatube/internal/core/group"
	"yatube/internal/core/listing"
	groupPort "yatube/internal/ports/group"
)

const maxSlugLength = 50

// slugPattern accepts letters of either case, digits, underscores and hyphens.
var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// CreateGroupInput describes a new group. Slug is derived from the title
// when omitted.
type CreateGroupInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"max=50"`
	Description string `json:"description"`
}

// GroupService implements group use cases.
type GroupService struct {
	GroupRepository groupPort.GroupRepository
	Logger          *zap.Logger
}

func NewGroupService(repo groupPort.GroupRepository, logger *zap.Logger) *GroupService {
	return &GroupService{
		GroupRepository: repo,
		Logger:          logger,
	}
}

// CreateGroup is open to any requester. A taken slug fails with ErrConflict.
func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*groupPort.GroupDTO, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}

	key := in.Slug
	if key == "" {
		key = slug.Make(in.Title)
		if len(key) > maxSlugLength {
			key = strings.TrimRight(key[:maxSlugLength], "-")
		}
	}
	if !slugPattern.MatchString(key) {
		return nil, apperror.Invalid("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
	}

	g := &groupEntity.Group{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       in.Title,
		Slug:        key,
		Description: in.Description,
	}
	if err := s.GroupRepository.Create(ctx, g); err != nil {
		return nil, err
	}
	s.Logger.Info("Group created", zap.String("slug", g.Slug))
	return groupPort.NewGroupDTO(g), nil
}

// GetGroup looks a group up by slug.
func (s *GroupService) GetGroup(ctx context.Context, slug string) (*groupPort.GroupDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return groupPort.NewGroupDTO(g), nil
}

func (s *GroupService) ListGroups(ctx context.Context, page int) (*listing.Page[*groupPort.GroupDTO], error) {
	groups, err := s.GroupRepository.List(ctx, listing.Default, page)
	if err != nil {
		return nil, err
	}
	return listing.MapPage(groups, groupPort.NewGroupDTO), nil
}

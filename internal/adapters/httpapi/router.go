package httpapi

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/actor"
	commentapp "yatube/internal/core/comment/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	"yatube/internal/core/listing"
	postapp "yatube/internal/core/post/service"
	userapp "yatube/internal/core/user/service"
	commentPort "yatube/internal/ports/comment"
	followerPort "yatube/internal/ports/follower"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

// UserUseCase and the other *UseCase interfaces are what the controllers need from the services.
type UserUseCase interface {
	RegisterUser(ctx context.Context, in userapp.RegisterUserInput) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, in userapp.LoginInput) (*userPort.LoginResponse, error)
	ParseToken(ctx context.Context, raw string) (actor.Actor, error)
	GetUser(ctx context.Context, username string) (*userPort.UserDTO, error)
	ListUsers(ctx context.Context, username string, page int) (*listing.Page[*userPort.UserDTO], error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, a actor.Actor, in postapp.CreatePostInput) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, id string) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, a actor.Actor, id string, in postapp.UpdatePostInput, partial bool) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, a actor.Actor, id string) error
	ListPosts(ctx context.Context, q listing.PostQuery, page int) (*listing.Page[*postPort.PostDTO], error)
	ListGroupPosts(ctx context.Context, slug string, page int) (*groupPort.GroupDTO, *listing.Page[*postPort.PostDTO], error)
	ListAuthorPosts(ctx context.Context, username string, page int) (*userPort.UserDTO, *listing.Page[*postPort.PostDTO], error)
}

type CommentUseCase interface {
	CreateComment(ctx context.Context, a actor.Actor, postID string, in commentapp.CreateCommentInput) (*commentPort.CommentDTO, error)
	GetComment(ctx context.Context, postID, id string) (*commentPort.CommentDTO, error)
	UpdateComment(ctx context.Context, a actor.Actor, postID, id string, in commentapp.UpdateCommentInput, partial bool) (*commentPort.CommentDTO, error)
	DeleteComment(ctx context.Context, a actor.Actor, postID, id string) error
	ListComments(ctx context.Context, postID string, page int) (*listing.Page[*commentPort.CommentDTO], error)
}

type GroupUseCase interface {
	CreateGroup(ctx context.Context, in groupapp.CreateGroupInput) (*groupPort.GroupDTO, error)
	GetGroup(ctx context.Context, slug string) (*groupPort.GroupDTO, error)
	ListGroups(ctx context.Context, page int) (*listing.Page[*groupPort.GroupDTO], error)
}

type FollowerUseCase interface {
	CreateFollow(ctx context.Context, a actor.Actor, in followerapp.CreateFollowInput) (*followerPort.FollowerDTO, error)
	DeleteFollow(ctx context.Context, a actor.Actor, username string) error
	ListFollows(ctx context.Context, q listing.FollowQuery, page int) (*listing.Page[*followerPort.FollowerDTO], error)
	IsFollowing(ctx context.Context, a actor.Actor, authorID uuid.UUID) (bool, error)
}

type TimelineUseCase interface {
	FollowIndex(ctx context.Context, a actor.Actor, page int) (*listing.Page[*postPort.PostDTO], error)
}

// UseCases groups the inbound ports the API is served from.
type UseCases struct {
	Users     UserUseCase
	Posts     PostUseCase
	Comments  CommentUseCase
	Groups    GroupUseCase
	Followers FollowerUseCase
	Timeline  TimelineUseCase
}

// Register mounts the REST API under /api/v1 on r. Use cases are injected
// from outside; this only wires routes.
func Register(r *gin.Engine, uc UseCases, logger *zap.Logger) {
	uctl := NewUserController(uc.Users)
	pc := NewPostController(uc.Posts)
	cc := NewCommentController(uc.Comments)
	gc := NewGroupController(uc.Groups, uc.Posts)
	fc := NewFollowerController(uc.Followers)
	tc := NewTimelineController(uc.Timeline)

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(uc.Users, logger, nil))

	api.POST("/token-auth/", uctl.Login)
	api.GET("/users/", uctl.List)
	api.POST("/users/", uctl.Register)
	api.GET("/users/:username/", uctl.Get)
	api.GET("/users/:username/posts/", pc.ListByAuthor)

	api.GET("/posts/", pc.List)
	api.POST("/posts/", pc.Create)
	api.GET("/posts/:post_id/", pc.Get)
	api.PUT("/posts/:post_id/", pc.Update)
	api.PATCH("/posts/:post_id/", pc.PartialUpdate)
	api.DELETE("/posts/:post_id/", pc.Delete)

	api.GET("/posts/:post_id/comments/", cc.List)
	api.POST("/posts/:post_id/comments/", cc.Create)
	api.GET("/posts/:post_id/comments/:comment_id/", cc.Get)
	api.PUT("/posts/:post_id/comments/:comment_id/", cc.Update)
	api.PATCH("/posts/:post_id/comments/:comment_id/", cc.PartialUpdate)
	api.DELETE("/posts/:post_id/comments/:comment_id/", cc.Delete)

	api.GET("/group/", gc.List)
	api.POST("/group/", gc.Create)
	api.GET("/group/:slug/", gc.Get)
	api.GET("/group/:slug/posts/", gc.Posts)

	api.GET("/follow/", fc.List)
	api.POST("/follow/", fc.Create)
	api.DELETE("/follow/:username/", fc.Delete)

	api.GET("/feed/", tc.FollowIndex)
}

// NewEngine builds a gin engine with request logging, panic recovery and
// permissive CORS.
func NewEngine(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery(), cors.Default())
	return r
}

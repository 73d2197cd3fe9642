// Package web serves the server-rendered HTML pages. It shares the core
// services with the REST API and adds cookie based login on top of them.
package web

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/actor"
	"yatube/internal/core/apperror"
	commentapp "yatube/internal/core/comment/service"
	followerapp "yatube/internal/core/follower/service"
	"yatube/internal/core/listing"
	postapp "yatube/internal/core/post/service"
	userapp "yatube/internal/core/user/service"
	commentPort "yatube/internal/ports/comment"
	followerPort "yatube/internal/ports/follower"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

// Users, Posts, Comments, Groups, Followers and Timeline are the use cases the HTML pages call.
type Users interface {
	RegisterUser(ctx context.Context, in userapp.RegisterUserInput) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, in userapp.LoginInput) (*userPort.LoginResponse, error)
	ParseToken(ctx context.Context, raw string) (actor.Actor, error)
	GetUser(ctx context.Context, username string) (*userPort.UserDTO, error)
}

type Posts interface {
	CreatePost(ctx context.Context, a actor.Actor, in postapp.CreatePostInput) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, id string) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, a actor.Actor, id string, in postapp.UpdatePostInput, partial bool) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, a actor.Actor, id string) error
	ListPosts(ctx context.Context, q listing.PostQuery, page int) (*listing.Page[*postPort.PostDTO], error)
	ListGroupPosts(ctx context.Context, slug string, page int) (*groupPort.GroupDTO, *listing.Page[*postPort.PostDTO], error)
	ListAuthorPosts(ctx context.Context, username string, page int) (*userPort.UserDTO, *listing.Page[*postPort.PostDTO], error)
}

type Comments interface {
	CreateComment(ctx context.Context, a actor.Actor, postID string, in commentapp.CreateCommentInput) (*commentPort.CommentDTO, error)
	ListComments(ctx context.Context, postID string, page int) (*listing.Page[*commentPort.CommentDTO], error)
}

type Groups interface {
	ListGroups(ctx context.Context, page int) (*listing.Page[*groupPort.GroupDTO], error)
}

type Followers interface {
	CreateFollow(ctx context.Context, a actor.Actor, in followerapp.CreateFollowInput) (*followerPort.FollowerDTO, error)
	DeleteFollow(ctx context.Context, a actor.Actor, username string) error
	IsFollowing(ctx context.Context, a actor.Actor, authorID uuid.UUID) (bool, error)
}

type Timeline interface {
	FollowIndex(ctx context.Context, a actor.Actor, page int) (*listing.Page[*postPort.PostDTO], error)
}

// Handler renders the server-side HTML pages.
type Handler struct {
	Users     Users
	Posts     Posts
	Comments  Comments
	Groups    Groups
	Followers Followers
	Timeline  Timeline
	Logger    *zap.Logger
	// SecureCookie marks the login cookie Secure.
	SecureCookie bool

	templates map[string]*template.Template
}

// NewHandler parses the embedded templates.
func NewHandler(users Users, posts Posts, comments Comments, groups Groups, followers Followers, timeline Timeline, logger *zap.Logger) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return &Handler{
		Users:     users,
		Posts:     posts,
		Comments:  comments,
		Groups:    groups,
		Followers: followers,
		Timeline:  timeline,
		Logger:    logger,
		templates: templates,
	}, nil
}

// Register mounts the HTML routes on r.
func (h *Handler) Register(r *gin.Engine) {
	g := r.Group("/")
	g.Use(middleware.Auth(h.Users, h.Logger, &middleware.AuthConfig{InvalidTokenAnonymous: true}))

	g.GET("/", h.index)
	g.GET("/group/:slug/", h.groupPosts)
	g.GET("/new_post/", h.newPostForm)
	g.POST("/new_post/", h.newPost)
	g.GET("/follow/", h.followIndex)

	g.GET("/auth/login/", h.loginForm)
	g.POST("/auth/login/", h.login)
	g.POST("/auth/logout/", h.logout)
	g.GET("/auth/signup/", h.signupForm)
	g.POST("/auth/signup/", h.signup)

	g.GET("/:username/", h.profile)
	g.GET("/:username/follow/", h.profileFollow)
	g.GET("/:username/unfollow/", h.profileUnfollow)
	g.GET("/:username/:post_id/", h.postView)
	g.GET("/:username/:post_id/edit/", h.postEditForm)
	g.POST("/:username/:post_id/edit/", h.postEdit)
	g.POST("/:username/:post_id/delete/", h.postDelete)
	g.POST("/:username/:post_id/comment/", h.addComment)
}

// requireLogin redirects anonymous visitors to the login page.
func (h *Handler) requireLogin(c *gin.Context) (actor.Actor, bool) {
	a := middleware.Actor(c)
	if !a.Authenticated {
		h.redirectToLogin(c)
		return a, false
	}
	return a, true
}

func (h *Handler) redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/auth/login/?next="+url.QueryEscape(c.Request.URL.RequestURI()))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperror.ErrPermission):
		if !middleware.Actor(c).Authenticated {
			h.redirectToLogin(c)
			return
		}
		h.render(c, http.StatusForbidden, "error.html", "Forbidden", "You do not have permission to do this.")
	case errors.Is(err, apperror.ErrNotFound):
		h.render(c, http.StatusNotFound, "error.html", "Page not found", "The page you requested does not exist.")
	case errors.Is(err, apperror.ErrConflict):
		h.render(c, http.StatusConflict, "error.html", "Conflict", err.Error())
	case errors.Is(err, apperror.ErrValidation):
		h.render(c, http.StatusBadRequest, "error.html", "Bad request", err.Error())
	default:
		_ = c.Error(err)
		h.render(c, http.StatusInternalServerError, "error.html", "Server error", "Something went wrong.")
	}
}

// fieldErrors extracts per-field messages for re-rendering a form.
func fieldErrors(err error) (map[string]string, bool) {
	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}

// safeNext accepts only local absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func page(c *gin.Context) int {
	return listing.ParsePage(c.Query("page"))
}

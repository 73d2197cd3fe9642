package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/apperror"
	commentapp "yatube/internal/core/comment/service"
	"yatube/internal/core/field"
	followerapp "yatube/internal/core/follower/service"
	"yatube/internal/core/listing"
	postapp "yatube/internal/core/post/service"
	commentPort "yatube/internal/ports/comment"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

type listContent struct {
	Group *groupPort.GroupDTO
	Page  *listing.Page[*postPort.PostDTO]
}

type profileContent struct {
	Author    *userPort.UserDTO
	Page      *listing.Page[*postPort.PostDTO]
	Following bool
	IsSelf    bool
}

type postContent struct {
	Post        *postPort.PostDTO
	Comments    *listing.Page[*commentPort.CommentDTO]
	IsAuthor    bool
	CommentText string
	Errors      map[string]string
}

type formContent struct {
	Editing bool
	Text    string
	Group   string
	Groups  []*groupPort.GroupDTO
	Errors  map[string]string
}

func (h *Handler) index(c *gin.Context) {
	posts, err := h.Posts.ListPosts(c.Request.Context(), listing.PostQuery{}, page(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", "Latest posts", listContent{Page: posts})
}

func (h *Handler) groupPosts(c *gin.Context) {
	group, posts, err := h.Posts.ListGroupPosts(c.Request.Context(), c.Param("slug"), page(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "group.html", group.Title, listContent{Group: group, Page: posts})
}

func (h *Handler) followIndex(c *gin.Context) {
	a, ok := h.requireLogin(c)
	if !ok {
		return
	}
	posts, err := h.Timeline.FollowIndex(c.Request.Context(), a, page(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", "Following", listContent{Page: posts})
}

func (h *Handler) profile(c *gin.Context) {
	ctx := c.Request.Context()
	a := middleware.Actor(c)
	author, posts, err := h.Posts.ListAuthorPosts(ctx, c.Param("username"), page(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	following, err := h.Followers.IsFollowing(ctx, a, uuid.FromStringOrNil(author.ID))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "profile.html", author.Username, profileContent{
		Author:    author,
		Page:      posts,
		Following: following,
		IsSelf:    a.Authenticated && a.Username == author.Username,
	})
}

func (h *Handler) profileFollow(c *gin.Context) {
	a, ok := h.requireLogin(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := c.Param("username")
	author, err := h.Users.GetUser(ctx, username)
	if err != nil {
		h.handleError(c, err)
		return
	}
	// The link is idempotent even though the store accepts duplicate edges.
	following, err := h.Followers.IsFollowing(ctx, a, uuid.FromStringOrNil(author.ID))
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !following && author.Username != a.Username {
		if _, err := h.Followers.CreateFollow(ctx, a, followerapp.CreateFollowInput{Author: username}); err != nil {
			h.handleError(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/"+author.Username+"/")
}

func (h *Handler) profileUnfollow(c *gin.Context) {
	a, ok := h.requireLogin(c)
	if !ok {
		return
	}
	username := c.Param("username")
	if err := h.Followers.DeleteFollow(c.Request.Context(), a, username); err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+username+"/")
}

// postOf loads the post in the path, which must belong to the username in the path.
func (h *Handler) postOf(c *gin.Context) (*postPort.PostDTO, bool) {
	p, err := h.Posts.GetPost(c.Request.Context(), c.Param("post_id"))
	if err == nil && p.Author != c.Param("username") {
		err = errors.Wrapf(apperror.ErrNotFound, "post %s of %s", p.ID, c.Param("username"))
	}
	if err != nil {
		h.handleError(c, err)
		return nil, false
	}
	return p, true
}

func (h *Handler) postView(c *gin.Context) {
	p, ok := h.postOf(c)
	if !ok {
		return
	}
	h.renderPost(c, http.StatusOK, p, "", nil)
}

func (h *Handler) renderPost(c *gin.Context, status int, p *postPort.PostDTO, commentText string, errs map[string]string) {
	comments, err := h.Comments.ListComments(c.Request.Context(), p.ID, page(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	a := middleware.Actor(c)
	h.render(c, status, "post.html", "Post by "+p.Author, postContent{
		Post:        p,
		Comments:    comments,
		IsAuthor:    a.Authenticated && a.Username == p.Author,
		CommentText: commentText,
		Errors:      errs,
	})
}

func (h *Handler) addComment(c *gin.Context) {
	a, ok := h.requireLogin(c)
	if !ok {
		return
	}
	p, ok := h.postOf(c)
	if !ok {
		return
	}
	text := c.PostForm("text")
	_, err := h.Comments.CreateComment(c.Request.Context(), a, p.ID, commentapp.CreateCommentInput{Text: text})
	if errs, invalid := fieldErrors(err); invalid {
		h.renderPost(c, http.StatusBadRequest, p, text, errs)
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+p.Author+"/"+p.ID+"/")
}

func (h *Handler) newPostForm(c *gin.Context) {
	if _, ok := h.requireLogin(c); !ok {
		return
	}
	h.renderForm(c, http.StatusOK, "New post", formContent{})
}

func (h *Handler) newPost(c *gin.Context) {
	a, ok := h.requireLogin(c)
	if !ok {
		return
	}
	form := formContent{Text: c.PostForm("text"), Group: c.PostForm("group")}
	in := postapp.CreatePostInput{Text: form.Text}
	if form.Group != "" {
		in.Group = &form.Group
	}
	_, err := h.Posts.CreatePost(c.Request.Context(), a, in)
	if errs, invalid := fieldErrors(err); invalid {
		form.Errors = errs
		h.renderForm(c, http.StatusBadRequest, "New post", form)
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) postEditForm(c *gin.Context) {
	a, ok := h.requireLogin(c)
	if !ok {
		return
	}
	p, ok := h.postOf(c)
	if !ok {
		return
	}
	if p.Author != a.Username {
		c.Redirect(http.StatusFound, "/"+p.Author+"/"+p.ID+"/")
		return
	}
	form := formContent{Editing: true, Text: p.Text}
	if p.Group != nil {
		form.Group = *p.Group
	}
	h.renderForm(c, http.StatusOK, "Edit post", form)
}

func (h *Handler) postEdit(c *gin.Context) {
	a, ok := h.requireLogin(c)
	if !ok {
		return
	}
	p, ok := h.postOf(c)
	if !ok {
		return
	}
	form := formContent{Editing: true, Text: c.PostForm("text"), Group: strings.TrimSpace(c.PostForm("group"))}
	in := postapp.UpdatePostInput{Text: field.Some(form.Text), Group: field.Null[string]()}
	if form.Group != "" {
		in.Group = field.Some(form.Group)
	}
	_, err := h.Posts.UpdatePost(c.Request.Context(), a, p.ID, in, false)
	if errs, invalid := fieldErrors(err); invalid {
		form.Errors = errs
		h.renderForm(c, http.StatusBadRequest, "Edit post", form)
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+p.Author+"/"+p.ID+"/")
}

func (h *Handler) postDelete(c *gin.Context) {
	a, ok := h.requireLogin(c)
	if !ok {
		return
	}
	p, ok := h.postOf(c)
	if !ok {
		return
	}
	if err := h.Posts.DeletePost(c.Request.Context(), a, p.ID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+p.Author+"/")
}

func (h *Handler) renderForm(c *gin.Context, status int, title string, form formContent) {
	groups, err := h.allGroups(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	form.Groups = groups
	h.render(c, status, "post_form.html", title, form)
}

func (h *Handler) allGroups(c *gin.Context) ([]*groupPort.GroupDTO, error) {
	var out []*groupPort.GroupDTO
	for n := 1; ; n++ {
		p, err := h.Groups.ListGroups(c.Request.Context(), n)
		if err != nil {
			return nil, err
		}
		out = append(out, p.Items...)
		if !p.HasNext() {
			return out, nil
		}
	}
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/listing"
	postapp "yatube/internal/core/post/service"
)

// PostController serves /api/v1/posts.
type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

func (ctl *PostController) List(c *gin.Context) {
	q, err := listing.PostQueryFromParams(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := ctl.pc.ListPosts(c.Request.Context(), q, listing.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListByAuthor lists the posts of the user named in the path.
func (ctl *PostController) ListByAuthor(c *gin.Context) {
	_, res, err := ctl.pc.ListAuthorPosts(c.Request.Context(), c.Param("username"), listing.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) Create(c *gin.Context) {
	var req postapp.CreatePostInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := ctl.pc.CreatePost(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) Get(c *gin.Context) {
	res, err := ctl.pc.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) Update(c *gin.Context)        { ctl.update(c, false) }
func (ctl *PostController) PartialUpdate(c *gin.Context) { ctl.update(c, true) }

func (ctl *PostController) update(c *gin.Context, partial bool) {
	var req postapp.UpdatePostInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := ctl.pc.UpdatePost(c.Request.Context(), middleware.Actor(c), c.Param("post_id"), req, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) Delete(c *gin.Context) {
	if err := ctl.pc.DeletePost(c.Request.Context(), middleware.Actor(c), c.Param("post_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

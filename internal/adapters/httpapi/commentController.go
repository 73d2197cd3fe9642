package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	commentapp "yatube/internal/core/comment/service"
	"yatube/internal/core/listing"
)

// CommentController serves the comments nested under a post.
type CommentController struct{ cc CommentUseCase }

func NewCommentController(cc CommentUseCase) *CommentController { return &CommentController{cc: cc} }

func (ctl *CommentController) List(c *gin.Context) {
	res, err := ctl.cc.ListComments(c.Request.Context(), c.Param("post_id"), listing.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Create answers 200, not 201. Author and post always come from the
// request context, never from the body.
func (ctl *CommentController) Create(c *gin.Context) {
	var req commentapp.CreateCommentInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := ctl.cc.CreateComment(c.Request.Context(), middleware.Actor(c), c.Param("post_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *CommentController) Get(c *gin.Context) {
	res, err := ctl.cc.GetComment(c.Request.Context(), c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *CommentController) Update(c *gin.Context)        { ctl.update(c, false) }
func (ctl *CommentController) PartialUpdate(c *gin.Context) { ctl.update(c, true) }

func (ctl *CommentController) update(c *gin.Context, partial bool) {
	var req commentapp.UpdateCommentInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := ctl.cc.UpdateComment(c.Request.Context(), middleware.Actor(c), c.Param("post_id"), c.Param("comment_id"), req, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *CommentController) Delete(c *gin.Context) {
	err := ctl.cc.DeleteComment(c.Request.Context(), middleware.Actor(c), c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

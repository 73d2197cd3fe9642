package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	groupapp "yatube/internal/core/group/service"
	"yatube/internal/core/listing"
)

// GroupController serves /api/v1/group, including a group's posts.
type GroupController struct {
	gc GroupUseCase
	pc PostUseCase
}

func NewGroupController(gc GroupUseCase, pc PostUseCase) *GroupController {
	return &GroupController{gc: gc, pc: pc}
}

func (ctl *GroupController) List(c *gin.Context) {
	res, err := ctl.gc.ListGroups(c.Request.Context(), listing.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *GroupController) Create(c *gin.Context) {
	var req groupapp.CreateGroupInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := ctl.gc.CreateGroup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *GroupController) Get(c *gin.Context) {
	res, err := ctl.gc.GetGroup(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Posts lists at most the twelve newest posts of the group.
func (ctl *GroupController) Posts(c *gin.Context) {
	_, res, err := ctl.pc.ListGroupPosts(c.Request.Context(), c.Param("slug"), listing.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	followerapp "yatube/internal/core/follower/service"
	"yatube/internal/core/listing"
)

// FollowerController serves /api/v1/follow for the acting user.
type FollowerController struct{ fc FollowerUseCase }

func NewFollowerController(fc FollowerUseCase) *FollowerController {
	return &FollowerController{fc: fc}
}

// List filters by ?user= and ?author= usernames; ?search= matches either.
func (ctl *FollowerController) List(c *gin.Context) {
	q := listing.FollowQueryFromParams(c.Request.URL.Query())
	res, err := ctl.fc.ListFollows(c.Request.Context(), q, listing.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Create always records the caller as the follower.
func (ctl *FollowerController) Create(c *gin.Context) {
	var req followerapp.CreateFollowInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := ctl.fc.CreateFollow(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *FollowerController) Delete(c *gin.Context) {
	if err := ctl.fc.DeleteFollow(c.Request.Context(), middleware.Actor(c), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

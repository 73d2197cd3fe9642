package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/listing"
)

// TimelineController serves the following feed.
type TimelineController struct{ tc TimelineUseCase }

func NewTimelineController(tc TimelineUseCase) *TimelineController {
	return &TimelineController{tc: tc}
}

// FollowIndex serves the caller's feed of followed authors.
func (ctl *TimelineController) FollowIndex(c *gin.Context) {
	res, err := ctl.tc.FollowIndex(c.Request.Context(), middleware.Actor(c), listing.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/core/listing"
	userapp "yatube/internal/core/user/service"
)

// UserController serves signup, login and user lookups.
type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

func (ctl *UserController) Login(c *gin.Context) {
	var req userapp.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) Register(c *gin.Context) {
	var req userapp.RegisterUserInput
	if !bindJSON(c, &req) {
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ctl *UserController) List(c *gin.Context) {
	res, err := ctl.uc.ListUsers(c.Request.Context(), c.Query("username"), listing.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) Get(c *gin.Context) {
	u, err := ctl.uc.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/apperror"
	userapp "yatube/internal/core/user/service"
)

type loginContent struct {
	Next     string
	Username string
	Errors   map[string]string
}

type signupContent struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Errors    map[string]string
}

func (h *Handler) loginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", "Log in", loginContent{Next: safeNext(c.Query("next"))})
}

// login issues the same token as the API and keeps it in an HttpOnly cookie.
func (h *Handler) login(c *gin.Context) {
	form := loginContent{Next: safeNext(c.PostForm("next")), Username: c.PostForm("username")}
	res, err := h.Users.LoginUser(c.Request.Context(), userapp.LoginInput{
		Username: form.Username,
		Password: c.PostForm("password"),
	})
	if errs, invalid := fieldErrors(err); invalid {
		form.Errors = errs
		h.render(c, http.StatusBadRequest, "login.html", "Log in", form)
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	maxAge := int(time.Until(time.Unix(res.ExpiresAt, 0)).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, res.Token, maxAge, "/", "", h.SecureCookie, true)
	c.Redirect(http.StatusFound, form.Next)
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.SecureCookie, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) signupForm(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", "Sign up", signupContent{})
}

func (h *Handler) signup(c *gin.Context) {
	form := signupContent{
		Username:  c.PostForm("username"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Email:     c.PostForm("email"),
	}
	_, err := h.Users.RegisterUser(c.Request.Context(), userapp.RegisterUserInput{
		Username:  form.Username,
		Password:  c.PostForm("password"),
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	})
	if errors.Is(err, apperror.ErrConflict) {
		err = apperror.Invalid("username", "A user with that username already exists.")
	}
	if errs, invalid := fieldErrors(err); invalid {
		form.Errors = errs
		h.render(c, http.StatusBadRequest, "signup.html", "Sign up", form)
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/auth/login/")
}

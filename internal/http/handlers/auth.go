package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shortsview-backend/internal/http/flash"
	"github.com/yungbote/shortsview-backend/internal/http/middleware"
	"github.com/yungbote/shortsview-backend/internal/http/response"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
	"github.com/yungbote/shortsview-backend/internal/services"
)

type AuthHandler struct {
	authService  services.AuthService
	secureCookie bool
}

func NewAuthHandler(authService services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

func (ah *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", Page{Title: "Log in"})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	acc, err := ah.authService.Authenticate(ctx, c.PostForm("username"), c.PostForm("password"))
	if errors.Is(err, pkgerrors.ErrUnauthorized) {
		render(c, http.StatusOK, "login.html", Page{
			Title:   "Log in",
			Flashes: []flash.Message{{Category: flash.CategoryError, Text: services.MsgInvalidCredentials}},
		})
		return
	}
	if err != nil {
		response.RespondServiceError(c, err, "")
		return
	}
	token, err := ah.authService.StartSession(ctx, acc)
	if err != nil {
		response.RespondServiceError(c, err, "")
		return
	}
	ah.setSessionCookie(c, token, int(ah.authService.SessionTTL().Seconds()))
	c.Redirect(http.StatusFound, "/")
}

func (ah *AuthHandler) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", Page{Title: "Register"})
}

func (ah *AuthHandler) Register(c *gin.Context) {
	_, err := ah.authService.Register(
		c.Request.Context(),
		c.PostForm("username"),
		c.PostForm("email"),
		c.PostForm("password"),
	)
	var verr *pkgerrors.ValidationError
	if errors.As(err, &verr) {
		flash.Add(c, flash.CategoryError, verr.Message)
		c.Redirect(http.StatusFound, "/register")
		return
	}
	if err != nil {
		response.RespondServiceError(c, err, "")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := ah.authService.EndSession(c.Request.Context(), token); err != nil {
			_ = c.Error(err)
		}
	}
	ah.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/login")
}

func (ah *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", ah.secureCookie, true)
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"store-ratings/internal/core/auth"
	"store-ratings/internal/domain"
	httpez "store-ratings/internal/transport/http/ez"
)

const cookieMaxAge = 7 * 24 * 3600

func setSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, cookieMaxAge, "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", secure, true)
}

func mountAuth(api *gin.RouterGroup, d Deps) {
	ez := httpez.New(api, d.Log)

	type registerIn struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Address  string `json:"address"`
	}
	type registerOut struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}
	httpez.RegisterAction[registerIn, registerOut](ez, d.DB, httpez.Action[registerIn, registerOut]{
		Method:  http.MethodPost,
		Path:    "/auth/register",
		Binder:  httpez.BindJSON,
		Created: true,
		Handler: func(c *gin.Context, _ *gorm.DB, in *registerIn) (registerOut, error) {
			id, err := d.Accounts.Register(c, in.Name, in.Email, in.Password, in.Address)
			if err != nil {
				return registerOut{}, err
			}
			return registerOut{Message: "Signup successful", UserID: id}, nil
		},
	})

	type loginIn struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		Message string       `json:"message"`
		User    *domain.User `json:"user"`
		Token   string       `json:"token"`
	}
	httpez.RegisterAction[loginIn, loginOut](ez, d.DB, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *loginIn) (loginOut, error) {
			u, err := d.Accounts.Login(in.Email, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			tok, err := d.JWT.Issue(u.ID, u.Role)
			if err != nil || tok == "" {
				return loginOut{}, httpez.Internal("issue token failed", err)
			}
			setSessionCookie(c, tok, d.CookieSecure)
			return loginOut{Message: "User Logged In successfully!", User: u, Token: tok}, nil
		},
	})

	// 登出不要求会话有效，直接清 cookie
	httpez.RegisterAction[struct{}, gin.H](ez, d.DB, httpez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/auth/logout",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			clearSessionCookie(c, d.CookieSecure)
			return gin.H{"message": "Logged Out!"}, nil
		},
	})
}

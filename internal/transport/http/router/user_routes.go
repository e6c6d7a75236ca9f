package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"store-ratings/internal/core/auth"
	"store-ratings/internal/domain"
	httpez "store-ratings/internal/transport/http/ez"
)

func mountAccount(g *gin.RouterGroup, d Deps) {
	ez := httpez.New(g, d.Log)

	type pwIn struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	httpez.RegisterAction[pwIn, gin.H](ez, d.DB, httpez.Action[pwIn, gin.H]{
		Method:     http.MethodPatch,
		Path:       "/user/update-password",
		Binder:     httpez.BindJSON,
		Permission: auth.ActionManageAccount,
		Handler: func(c *gin.Context, _ *gorm.DB, in *pwIn) (gin.H, error) {
			if err := d.Accounts.UpdatePassword(c.GetString("userId"), in.OldPassword, in.NewPassword); err != nil {
				return nil, err
			}
			return gin.H{"message": "Password updated successfully"}, nil
		},
	})

	type profileOut struct {
		Message string       `json:"message"`
		User    *domain.User `json:"user"`
	}
	httpez.RegisterAction[struct{}, profileOut](ez, d.DB, httpez.Action[struct{}, profileOut]{
		Method:     http.MethodGet,
		Path:       "/user/profile",
		Binder:     httpez.BindNone,
		Permission: auth.ActionManageAccount,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (profileOut, error) {
			u, err := d.Accounts.Profile(c.GetString("userId"))
			if err != nil {
				return profileOut{}, err
			}
			return profileOut{Message: "User profile fetched", User: u}, nil
		},
	})
}

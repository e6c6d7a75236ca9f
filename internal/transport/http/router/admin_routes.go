package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"store-ratings/internal/core/auth"
	"store-ratings/internal/domain"
	"store-ratings/internal/service"
	httpez "store-ratings/internal/transport/http/ez"
)

func mountAdmin(g *gin.RouterGroup, d Deps) {
	ez := httpez.New(g, d.Log)

	httpez.RegisterAction[struct{}, *service.Dashboard](ez, d.DB, httpez.Action[struct{}, *service.Dashboard]{
		Method:     http.MethodGet,
		Path:       "/admin/dashboard",
		Binder:     httpez.BindNone,
		Permission: auth.ActionManagePlatform,
		DenyMsg:    "Access denied. Admin only.",
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*service.Dashboard, error) {
			return d.Admin.Dashboard(c)
		},
	})

	type addUserIn struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Address  string `json:"address"`
		Role     string `json:"role"`
	}
	type addUserOut struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}
	httpez.RegisterAction[addUserIn, addUserOut](ez, d.DB, httpez.Action[addUserIn, addUserOut]{
		Method:     http.MethodPost,
		Path:       "/admin/add-users",
		Binder:     httpez.BindJSON,
		Permission: auth.ActionManagePlatform,
		DenyMsg:    "Access denied. Admin only.",
		Created:    true,
		Handler: func(c *gin.Context, _ *gorm.DB, in *addUserIn) (addUserOut, error) {
			id, err := d.Admin.CreateUser(c, in.Name, in.Email, in.Password, in.Address, in.Role)
			if err != nil {
				return addUserOut{}, err
			}
			return addUserOut{Message: "New user added successful!", UserID: id}, nil
		},
	})

	type addStoreIn struct {
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Address string  `json:"address"`
		OwnerID *string `json:"owner_id"`
	}
	type addStoreOut struct {
		Message string        `json:"message"`
		Store   *domain.Store `json:"store"`
	}
	httpez.RegisterAction[addStoreIn, addStoreOut](ez, d.DB, httpez.Action[addStoreIn, addStoreOut]{
		Method:     http.MethodPost,
		Path:       "/admin/add-stores",
		Binder:     httpez.BindJSON,
		Permission: auth.ActionManagePlatform,
		DenyMsg:    "Access denied. Admins only.",
		Created:    true,
		Handler: func(c *gin.Context, _ *gorm.DB, in *addStoreIn) (addStoreOut, error) {
			st, err := d.Admin.CreateStore(c, in.Name, in.Email, in.Address, in.OwnerID)
			if err != nil {
				return addStoreOut{}, err
			}
			return addStoreOut{Message: "Store added successfully", Store: st}, nil
		},
	})

	type usersOut struct {
		Users []service.UserRow `json:"users"`
	}
	httpez.RegisterAction[struct{}, usersOut](ez, d.DB, httpez.Action[struct{}, usersOut]{
		Method:     http.MethodGet,
		Path:       "/admin/users",
		Binder:     httpez.BindNone,
		Permission: auth.ActionManagePlatform,
		DenyMsg:    "Access denied. Admins only.",
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (usersOut, error) {
			rows, err := d.Admin.ListUsers()
			if err != nil {
				return usersOut{}, err
			}
			return usersOut{Users: rows}, nil
		},
	})

	type storesOut struct {
		Stores []domain.StoreWithRating `json:"stores"`
	}
	httpez.RegisterAction[struct{}, storesOut](ez, d.DB, httpez.Action[struct{}, storesOut]{
		Method:     http.MethodGet,
		Path:       "/admin/stores",
		Binder:     httpez.BindNone,
		Permission: auth.ActionManagePlatform,
		DenyMsg:    "Only admin can access this resource.",
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (storesOut, error) {
			rows, err := d.Admin.ListStores(c)
			if err != nil {
				return storesOut{}, err
			}
			return storesOut{Stores: rows}, nil
		},
	})

	httpez.RegisterAction[struct{}, []service.OwnerRef](ez, d.DB, httpez.Action[struct{}, []service.OwnerRef]{
		Method:     http.MethodGet,
		Path:       "/admin/store-owners",
		Binder:     httpez.BindNone,
		Permission: auth.ActionManagePlatform,
		DenyMsg:    "Access denied. Admin only.",
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) ([]service.OwnerRef, error) {
			return d.Admin.StoreOwners()
		},
	})
}

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

func mountStores(g *gin.RouterGroup, d Deps) {
	ez := httpez.New(g, d.Log)

	// 门店列表：任何已登录角色；带平均分和自己的评分
	type storesOut struct {
		Stores []domain.StoreWithRating `json:"stores"`
	}
	httpez.RegisterAction[struct{}, storesOut](ez, d.DB, httpez.Action[struct{}, storesOut]{
		Method:     http.MethodGet,
		Path:       "/stores",
		Binder:     httpez.BindNone,
		Permission: auth.ActionBrowseStores,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (storesOut, error) {
			rows, err := d.Stores.ListWithRatings(c, c.GetString("userId"))
			if err != nil {
				return storesOut{}, err
			}
			return storesOut{Stores: rows}, nil
		},
	})

	// 店主：名下所有门店的评分明细
	type ownerRatingsOut struct {
		Ratings       []domain.StoreRating `json:"ratings"`
		AverageRating float64              `json:"averageRating"`
	}
	httpez.RegisterAction[struct{}, ownerRatingsOut](ez, d.DB, httpez.Action[struct{}, ownerRatingsOut]{
		Method:     http.MethodGet,
		Path:       "/stores/ratings",
		Binder:     httpez.BindNone,
		Permission: auth.ActionViewOwnerStats,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (ownerRatingsOut, error) {
			rows, avg, err := d.Stores.OwnerRatings(c.GetString("userId"))
			if err != nil {
				return ownerRatingsOut{}, err
			}
			return ownerRatingsOut{Ratings: rows, AverageRating: avg}, nil
		},
	})

	// 店主：“我的门店”页（门店 + 平均分 + 评分人）
	httpez.RegisterAction[struct{}, *service.OwnerStoreView](ez, d.DB, httpez.Action[struct{}, *service.OwnerStoreView]{
		Method:     http.MethodGet,
		Path:       "/stores/ratings/my",
		Binder:     httpez.BindNone,
		Permission: auth.ActionViewOwnerStats,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*service.OwnerStoreView, error) {
			return d.Stores.MyStoreRatings(c.GetString("userId"))
		},
	})
}

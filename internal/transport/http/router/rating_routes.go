package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"store-ratings/internal/core/auth"
	"store-ratings/internal/domain"
	httpez "store-ratings/internal/transport/http/ez"
	mdw "store-ratings/internal/transport/http/middleware"
)

func mountRatings(g *gin.RouterGroup, d Deps) {
	ez := httpez.New(g, d.Log)

	type ratingIn struct {
		StoreID string `json:"store_id"`
		Rating  int    `json:"rating"`
	}
	type ratingOut struct {
		Message string         `json:"message"`
		Rating  *domain.Rating `json:"rating"`
	}

	// 提交评分：已评过则覆盖（依然返回 201，沿用原行为）
	httpez.RegisterAction[ratingIn, ratingOut](ez, d.DB, httpez.Action[ratingIn, ratingOut]{
		Method:     http.MethodPost,
		Path:       "/user/ratings",
		Binder:     httpez.BindJSON,
		Permission: auth.ActionRateStores,
		DenyMsg:    "Access denied. Only users can add ratings.",
		Created:    true,
		Handler: func(c *gin.Context, _ *gorm.DB, in *ratingIn) (ratingOut, error) {
			rt, err := d.Ratings.Submit(c, c.GetString("userId"), in.StoreID, in.Rating)
			if err != nil {
				return ratingOut{}, err
			}
			mdw.CountRatingWrite("submit")
			return ratingOut{Message: "Rating submitted successfully", Rating: rt}, nil
		},
	})

	// 修改评分：必须已有记录
	httpez.RegisterAction[ratingIn, ratingOut](ez, d.DB, httpez.Action[ratingIn, ratingOut]{
		Method:     http.MethodPatch,
		Path:       "/user/ratings",
		Binder:     httpez.BindJSON,
		Permission: auth.ActionRateStores,
		DenyMsg:    "Access denied. Only users can update ratings.",
		Handler: func(c *gin.Context, _ *gorm.DB, in *ratingIn) (ratingOut, error) {
			rt, err := d.Ratings.Update(c, c.GetString("userId"), in.StoreID, in.Rating)
			if err != nil {
				return ratingOut{}, err
			}
			mdw.CountRatingWrite("update")
			return ratingOut{Message: "Rating updated successfully", Rating: rt}, nil
		},
	})

	// 删除自己的评分
	httpez.RegisterAction[struct{}, gin.H](ez, d.DB, httpez.Action[struct{}, gin.H]{
		Method:     http.MethodDelete,
		Path:       "/user/ratings/:id",
		Binder:     httpez.BindNone,
		Permission: auth.ActionRateStores,
		DenyMsg:    "Access denied. Only users can delete ratings.",
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			if err := d.Ratings.Delete(c, c.GetString("userId"), c.Param("id")); err != nil {
				return nil, err
			}
			mdw.CountRatingWrite("delete")
			return gin.H{"message": "Rating deleted successfully."}, nil
		},
	})

	// 我的评分列表
	type myRatingsOut struct {
		Message string            `json:"message"`
		Ratings []domain.MyRating `json:"ratings"`
	}
	httpez.RegisterAction[struct{}, myRatingsOut](ez, d.DB, httpez.Action[struct{}, myRatingsOut]{
		Method:     http.MethodGet,
		Path:       "/user/ratings/my",
		Binder:     httpez.BindNone,
		Permission: auth.ActionRateStores,
		DenyMsg:    "Access denied. Only users can view their ratings.",
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (myRatingsOut, error) {
			rows, err := d.Ratings.MyRatings(c.GetString("userId"))
			if err != nil {
				return myRatingsOut{}, err
			}
			return myRatingsOut{Message: "My ratings", Ratings: rows}, nil
		},
	})
}

package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"store-ratings/internal/core/auth"
	"store-ratings/internal/service"
	mdw "store-ratings/internal/transport/http/middleware"
)

// Deps 进程级依赖，显式注入，不走全局单例
type Deps struct {
	Log          *zap.Logger
	DB           *gorm.DB
	JWT          *auth.JWTer
	CookieSecure bool
	CORSOrigin   string

	Accounts *service.AccountService
	Ratings  *service.RatingService
	Stores   *service.StoreService
	Admin    *service.AdminService
}

func NewEngine(d Deps) *gin.Engine {
	r := gin.New()

	corsCfg := cors.DefaultConfig()
	if d.CORSOrigin != "" {
		corsCfg.AllowOrigins = []string{d.CORSOrigin}
		corsCfg.AllowCredentials = true // 前端带 cookie
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")

	r.Use(
		mdw.RequestID(),
		cors.New(corsCfg),
		mdw.RateLimitPerIP(50, 100),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// 公共：注册/登录/登出
	mountAuth(api, d)

	// 鉴权分组：其余全部接口
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.JWT))
	mountAdmin(authed, d)
	mountStores(authed, d)
	mountRatings(authed, d)
	mountAccount(authed, d)

	return r
}

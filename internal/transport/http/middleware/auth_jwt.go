package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"store-ratings/internal/core/auth"
	resp "store-ratings/internal/transport/http/response"
)

// AuthJWT 会话校验：优先 httpOnly cookie，兼容 Authorization: Bearer。
// 校验通过后把 userId/role 写进上下文，角色判定交给 action 层的授权函数。
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if ck, err := c.Cookie(auth.CookieName); err == nil {
			token = ck
		}
		if token == "" {
			if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
				token = strings.TrimPrefix(ah, "Bearer ")
			}
		}
		if token == "" {
			resp.AbortJSON(c, resp.Error(resp.CodeUnauthorized, "Unauthorized - No token (Login First)"))
			return
		}
		claims, err := j.Parse(token)
		if err != nil {
			resp.AbortJSON(c, resp.Error(resp.CodeUnauthorized, "Invalid token"))
			return
		}
		c.Set("userId", claims.UID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)
		c.Next()
	}
}

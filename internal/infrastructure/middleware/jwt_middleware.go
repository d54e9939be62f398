package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medha_campus_server/pkg/errorx"
	"medha_campus_server/pkg/util/jwt"
)

// JWTAuth JWT 认证中间件
// 只校验传输凭证，业务权限仍以存储中的会话槽为准
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthenticated,
				"msg":  "Authentication required, please sign in",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthenticated,
				"msg":  "Malformed token, expected Bearer token",
			})
			return
		}

		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthenticated,
				"msg":  "Token expired or invalid, please sign in again",
			})
			return
		}

		if claims.Subject != "access_token" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthenticated,
				"msg":  "An access token is required for this endpoint",
			})
			return
		}

		// 供后续 Handler 使用
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

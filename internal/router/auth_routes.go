// Package router 提供 HTTP 路由注册
// 本文件定义认证相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由
// 全部为公开接口：登录状态由存储中的会话槽决定，不依赖请求头
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		// POST /auth/signup - 注册并建立会话
		authGroup.POST("/signup", rt.handlers.Auth.SignUp)
		// POST /auth/signin - 登录并建立会话
		authGroup.POST("/signin", rt.handlers.Auth.SignIn)
		// POST /auth/signout - 清除会话
		authGroup.POST("/signout", rt.handlers.Auth.SignOut)
		// GET /auth/session - 查询当前会话
		authGroup.GET("/session", rt.handlers.Auth.GetSession)
		// GET /auth/me - 查询当前登录账号
		authGroup.GET("/me", rt.handlers.Auth.GetCurrentUser)
	}
}

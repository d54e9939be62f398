// Package router 提供 HTTP 路由注册
// 本文件定义聊天 WebSocket 相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes 注册聊天相关路由
// 聊天为公开接口，无 API Key 时自动降级为预置回答模式
func (rt *Router) RegisterChatRoutes(r *gin.Engine) {
	// GET /chat/ws - 建立流式聊天 WebSocket 连接
	r.GET("/chat/ws", rt.handlers.Chat.Ws)
}

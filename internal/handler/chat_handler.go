// Package handler 提供 HTTP 请求处理器
// 本文件处理聊天流式连接相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	ws "medha_campus_server/internal/gateway/websocket"
	"medha_campus_server/internal/service"
)

// ChatHandler 聊天请求处理器
type ChatHandler struct {
	gateway *ws.ChatGateway
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{gateway: ws.NewChatGateway(svc)}
}

// Ws 建立聊天 WebSocket 连接
// GET /chat/ws
// 升级成功后，每条请求帧对应一串 delta 帧和一个终止帧
func (h *ChatHandler) Ws(c *gin.Context) {
	h.gateway.Serve(c)
}

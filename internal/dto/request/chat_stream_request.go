package request

import "medha_campus_server/internal/model"

// ChatStreamRequest 一轮对话的流式请求
// Messages 必须非空且以 user 消息结尾（即本轮要回答的提问）
type ChatStreamRequest struct {
	Messages []model.ChatMessage `json:"messages" binding:"required,min=1"`
}

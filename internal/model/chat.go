// Package model 定义存储层实体模型
// 本文件定义对话消息模型（仅存在于内存中，不落 KV）
package model

// 对话角色
// 发送到远端 API 前 assistant 会映射为 "model"
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage 一条对话消息
// 有序序列构成一轮完整对话，每轮提问都整体发送（远端无会话状态）
type ChatMessage struct {
	Role    string `json:"role"`            // "user" 或 "assistant"
	Content string `json:"content"`         // 文本内容
	Image   string `json:"image,omitempty"` // 可选的图片（Base64 编码）
}

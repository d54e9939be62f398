// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"medha_campus_server/internal/config"
	"medha_campus_server/internal/dao/mockdata"
	"medha_campus_server/internal/infrastructure/mq"
	"medha_campus_server/internal/service/auth"
	"medha_campus_server/internal/service/chat"
	"medha_campus_server/internal/service/complaint"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过 Services 访问各个 Service
type Services struct {
	Auth      AuthService      // 认证 Service
	Complaint ComplaintService // 投诉 Service
	Chat      ChatService      // 聊天 Service

	// Sessions 会话事件管理器，供网关等组件订阅
	Sessions *auth.SessionManager
}

// NewServices 创建并注入所有 Service 实例
// store: 存储层入口
// publisher: 投诉生命周期事件发布者，可为 nil
// geminiConf: 上游生成式接口配置
func NewServices(store *mockdata.Store, publisher mq.EventPublisher, geminiConf *config.GeminiConfig) *Services {
	sessions := auth.NewSessionManager()
	// 默认接入审计日志监听者，登录登出留痕
	sessions.Subscribe(auth.AuditLogListener)
	return &Services{
		Auth:      auth.NewService(store, sessions),
		Complaint: complaint.NewService(store, publisher),
		Chat:      chat.NewStreamingClient(geminiConf),
		Sessions:  sessions,
	}
}

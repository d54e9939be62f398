// Package auth 实现注册登录与会话管理
// session_manager.go
// 核心职责：会话状态变更的订阅与广播
package auth

import (
	"sync"

	"go.uber.org/zap"

	"medha_campus_server/internal/model"
)

// SessionEventType 会话事件类型
type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "signed_in"
	SessionSignedOut SessionEventType = "signed_out"
)

// SessionEvent 会话状态变更事件
// SignedOut 事件中 Account 可能为空
type SessionEvent struct {
	Type    SessionEventType
	Account *model.Account
}

// SessionListener 会话事件回调，在广播持锁期间同步调用，不可阻塞
type SessionListener func(event SessionEvent)

// SessionManager 管理会话事件订阅者
type SessionManager struct {
	lock      sync.Mutex
	nextId    int
	listeners map[int]SessionListener
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		listeners: make(map[int]SessionListener),
	}
}

// Subscribe 注册监听者，返回取消订阅函数
func (m *SessionManager) Subscribe(listener SessionListener) func() {
	m.lock.Lock()
	defer m.lock.Unlock()
	id := m.nextId
	m.nextId++
	m.listeners[id] = listener
	return func() {
		m.lock.Lock()
		defer m.lock.Unlock()
		delete(m.listeners, id)
	}
}

// AuditLogListener 内置的审计监听者，将会话状态变更写入结构化日志
func AuditLogListener(event SessionEvent) {
	fields := []zap.Field{zap.String("type", string(event.Type))}
	if event.Account != nil {
		fields = append(fields,
			zap.String("user_id", event.Account.Uuid),
			zap.String("email", event.Account.Email),
		)
	}
	zap.L().Info("session audit", fields...)
}

// Notify 向所有监听者广播事件
func (m *SessionManager) Notify(event SessionEvent) {
	m.lock.Lock()
	defer m.lock.Unlock()
	zap.L().Debug("session event", zap.String("type", string(event.Type)))
	for _, listener := range m.listeners {
		listener(event)
	}
}

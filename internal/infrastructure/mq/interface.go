// Package mq 实现投诉生命周期事件的发布与消费
// interface.go
// 核心职责：定义事件结构与发布者接口
// 发布是尽力而为的，事件失败不影响业务主流程
package mq

import "time"

// 事件类型
const (
	EventComplaintSubmitted     = "complaint_submitted"
	EventComplaintStatusChanged = "complaint_status_changed"
	EventComplaintDeleted       = "complaint_deleted"
)

// ComplaintEvent 投诉生命周期事件
type ComplaintEvent struct {
	EventId     string    `json:"event_id"` // 雪花算法生成的全局唯一 ID
	Type        string    `json:"type"`
	ComplaintId string    `json:"complaint_id"`
	ActorId     string    `json:"actor_id"` // 触发事件的用户
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventPublisher 事件发布者
// Publish 不可阻塞调用方，Start 启动后台消费循环
type EventPublisher interface {
	Publish(event ComplaintEvent)
	Start()
	Close()
}

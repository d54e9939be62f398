// Package mq 实现投诉生命周期事件的发布与消费
// channel_publisher.go
// 核心职责：进程内 channel 模式的事件发布者
// 单机部署时替代 Kafka，事件仅写入审计日志
package mq

import (
	"sync"

	"go.uber.org/zap"

	"medha_campus_server/pkg/constants"
)

// ChannelPublisher 基于缓冲 channel 的事件发布者
type ChannelPublisher struct {
	events    chan ComplaintEvent
	quit      chan struct{}
	closeOnce sync.Once
}

func NewChannelPublisher() *ChannelPublisher {
	return &ChannelPublisher{
		events: make(chan ComplaintEvent, constants.CHANNEL_SIZE),
		quit:   make(chan struct{}),
	}
}

// Publish 非阻塞投递，队列满时丢弃并记录告警
func (p *ChannelPublisher) Publish(event ComplaintEvent) {
	select {
	case p.events <- event:
	default:
		zap.L().Warn("complaint event dropped, channel full",
			zap.String("event_id", event.EventId),
			zap.String("type", event.Type))
	}
}

// Start 启动审计消费循环，阻塞直到 Close
func (p *ChannelPublisher) Start() {
	for {
		select {
		case event := <-p.events:
			auditLog(event)
		case <-p.quit:
			// 收尾：把已入队的事件消费完
			for {
				select {
				case event := <-p.events:
					auditLog(event)
				default:
					return
				}
			}
		}
	}
}

func (p *ChannelPublisher) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
	})
}

// auditLog 将事件写入结构化审计日志
func auditLog(event ComplaintEvent) {
	zap.L().Info("complaint event",
		zap.String("event_id", event.EventId),
		zap.String("type", event.Type),
		zap.String("complaint_id", event.ComplaintId),
		zap.String("actor_id", event.ActorId),
		zap.String("status", event.Status),
		zap.Time("created_at", event.CreatedAt))
}

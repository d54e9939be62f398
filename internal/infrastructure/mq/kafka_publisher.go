// Package mq 实现投诉生命周期事件的发布与消费
// kafka_publisher.go
// 核心职责：Kafka 模式的事件发布者
// 生产者按 complaint_id 哈希分区，消费者组做审计落盘
package mq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"medha_campus_server/internal/config"
)

// KafkaPublisher 基于 kafka-go 的事件发布者
type KafkaPublisher struct {
	producer  *kafka.Writer
	consumer  *kafka.Reader
	quit      chan struct{}
	closeOnce sync.Once
}

func NewKafkaPublisher(conf *config.KafkaConfig) *KafkaPublisher {
	producer := &kafka.Writer{
		Addr:                   kafka.TCP(conf.HostPort),
		Topic:                  conf.ComplaintTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           conf.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{conf.HostPort},
		Topic:          conf.ComplaintTopic,
		CommitInterval: conf.Timeout * time.Second,
		GroupID:        "complaint_audit",
		StartOffset:    kafka.LastOffset,
	})
	return &KafkaPublisher{
		producer: producer,
		consumer: consumer,
		quit:     make(chan struct{}),
	}
}

// Publish 序列化后异步写入 Kafka，key 取 complaint_id 保证同一投诉事件有序
func (p *KafkaPublisher) Publish(event ComplaintEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("failed to marshal complaint event", zap.Error(err))
		return
	}
	go func() {
		err := p.producer.WriteMessages(context.Background(), kafka.Message{
			Key:   []byte(event.ComplaintId),
			Value: value,
		})
		if err != nil {
			zap.L().Error("failed to publish complaint event",
				zap.String("event_id", event.EventId),
				zap.Error(err))
		}
	}()
}

// Start 启动审计消费循环，阻塞直到 Close
func (p *KafkaPublisher) Start() {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("kafka consumer panic", zap.Any("recover", r))
		}
	}()
	for {
		select {
		case <-p.quit:
			return
		default:
		}
		message, err := p.consumer.ReadMessage(context.Background())
		if err != nil {
			select {
			case <-p.quit:
				return
			default:
			}
			zap.L().Error("failed to read complaint event", zap.Error(err))
			continue
		}
		var event ComplaintEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			zap.L().Error("failed to unmarshal complaint event",
				zap.Int64("offset", message.Offset),
				zap.Error(err))
			continue
		}
		auditLog(event)
	}
}

func (p *KafkaPublisher) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
		if err := p.producer.Close(); err != nil {
			zap.L().Error(err.Error())
		}
		if err := p.consumer.Close(); err != nil {
			zap.L().Error(err.Error())
		}
	})
}

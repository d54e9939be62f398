// Package kv 键值介质的内存实现
// 用于单机模式和测试，无外部依赖
package kv

import (
	"context"
	"sync"
)

// MemoryKV 内存键值存储实现
// 互斥锁保护，接口语义与 Redis 实现保持一致
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKV 创建内存键值存储实例
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get 获取键对应的值（键不存在返回空字符串和 nil）
func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

// Set 设置键值对
func (m *MemoryKV) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete 删除一个或多个键
func (m *MemoryKV) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

// Close 实现 KVStore 接口，内存实现无需释放资源
func (m *MemoryKV) Close() error {
	return nil
}

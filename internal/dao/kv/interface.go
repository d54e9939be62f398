// Package kv 定义持久化键值介质的抽象
// 存储层按命名空间整体读写序列化集合，不做局部/索引更新
package kv

import "context"

// KVStore 键值存储接口
// 支持多种实现：Redis（持久化部署）、内存（单机/测试）
// 上层依赖此接口而非具体实现
type KVStore interface {
	// Get 获取键对应的值（键不存在返回空字符串和 nil）
	Get(ctx context.Context, key string) (string, error)
	// Set 设置键值对（不设过期，会话过期由上层惰性驱逐）
	Set(ctx context.Context, key string, value string) error
	// Delete 删除一个或多个键，键不存在不报错
	Delete(ctx context.Context, keys ...string) error
	// Close 释放底层资源
	Close() error
}

// 确保两个实现都满足 KVStore 接口
var (
	_ KVStore = (*RedisKV)(nil)
	_ KVStore = (*MemoryKV)(nil)
)

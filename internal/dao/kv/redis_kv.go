// Package kv 键值介质的 Redis 实现
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package kv

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"medha_campus_server/internal/config"
	"medha_campus_server/pkg/errorx"
)

// RedisKV Redis 键值存储实现
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV 创建 Redis 键值存储实例
// 从配置读取连接参数并创建客户端
func NewRedisKV(conf *config.RedisConfig) *RedisKV {
	addr := conf.Host + ":" + strconv.Itoa(conf.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.Password,
		DB:       conf.Db,
		// 连接池配置
		PoolSize:     50,
		MinIdleConns: 10,
	})
	return &RedisKV{client: client}
}

// Get 获取键对应的值（键不存在返回空字符串和 nil）
func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", errorx.Wrapf(err, errorx.CodeCacheError, "redis get key %s", key)
	}
	return value, nil
}

// Set 设置键值对
func (r *RedisKV) Set(ctx context.Context, key string, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis set key %s", key)
	}
	return nil
}

// Delete 删除一个或多个键
func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis del keys %v", keys)
	}
	return nil
}

// Close 关闭 Redis 连接
func (r *RedisKV) Close() error {
	return r.client.Close()
}

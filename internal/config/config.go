// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName string `toml:"appName"` // 应用名称，用于日志标识等
	Host    string `toml:"host"`    // 服务器监听地址，如 "0.0.0.0"
	Port    int    `toml:"port"`    // 服务器监听端口，如 8000
	Mode    string `toml:"mode"`    // 运行模式："dev" 或 "release"
}

// StorageConfig 持久化介质选择
type StorageConfig struct {
	// Mode 存储模式："redis"（持久化）或 "memory"（单机/测试）
	Mode string `toml:"mode"`
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Host     string `toml:"host"`     // Redis 服务器地址
	Port     int    `toml:"port"`     // Redis 端口，默认 6379
	Password string `toml:"password"` // Redis 密码，无密码留空
	Db       int    `toml:"db"`       // Redis 数据库编号，默认 0
}

// GeminiConfig 生成式语言 API 配置
// ApiKey 为空时聊天服务进入离线兜底模式（关键词匹配 + 模拟流式输出）
type GeminiConfig struct {
	ApiKey          string  `toml:"apiKey"`          // API 密钥，留空则走 mock 兜底
	BaseURL         string  `toml:"baseURL"`         // 流式生成端点
	MaxOutputTokens int     `toml:"maxOutputTokens"` // 单轮回复 token 上限
	Temperature     float64 `toml:"temperature"`     // 采样温度
	TopP            float64 `toml:"topP"`
	TopK            int     `toml:"topK"`
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// KafkaConfig 投诉生命周期事件的消息队列配置
type KafkaConfig struct {
	EventMode      string        `toml:"eventMode"`      // 事件模式："channel" 或 "kafka"
	HostPort       string        `toml:"hostPort"`       // Kafka 服务器地址，如 "localhost:9092"
	ComplaintTopic string        `toml:"complaintTopic"` // 投诉事件主题
	Partition      int           `toml:"partition"`      // 分区数
	Timeout        time.Duration `toml:"timeout"`        // 超时时间
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret            string `toml:"secret"`            // JWT 签名密钥，建议 32 字符以上
	AccessTokenExpiry int    `toml:"accessTokenExpiry"` // Access Token 有效期（小时），与会话窗口对齐为 168
}

// SnowflakeConfig 雪花算法配置
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 雪花算法节点 ID，范围 0-1023
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig      `toml:"mainConfig"`
	StorageConfig   `toml:"storageConfig"`
	RedisConfig     `toml:"redisConfig"`
	GeminiConfig    `toml:"geminiConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	JWTConfig       `toml:"jwtConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
}

// config 全局配置单例，延迟加载
var config *Config

// LoadConfig 从多个候选路径加载配置文件
// 按顺序尝试加载，找到第一个可用的配置文件即停止
func LoadConfig() error {
	paths := []string{
		"configs/config_local.toml", // 本地开发配置（优先）
		"configs/config.toml",
		"../../configs/config_local.toml", // 从子目录运行时的路径
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // 忽略加载错误，使用默认值
	}
	return config
}

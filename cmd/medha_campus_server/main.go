package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medha_campus_server/internal/config"
	"medha_campus_server/internal/dao/kv"
	"medha_campus_server/internal/dao/mockdata"
	"medha_campus_server/internal/handler"
	"medha_campus_server/internal/https_server"
	"medha_campus_server/internal/infrastructure/logger"
	"medha_campus_server/internal/infrastructure/mq"
	"medha_campus_server/internal/service"
	"medha_campus_server/pkg/util/jwt"
	"medha_campus_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()
	if conf.MainConfig.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger initialized")

	// 3. 初始化 JWT 与雪花节点
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry)
	snowflake.Init()

	// 4. 初始化存储层
	var store kv.KVStore
	if conf.StorageConfig.Mode == "redis" {
		store = kv.NewRedisKV(&conf.RedisConfig)
	} else {
		store = kv.NewMemoryKV()
	}
	zap.L().Info("kv store initialized", zap.String("mode", conf.StorageConfig.Mode))

	dataStore := mockdata.NewStore(store)
	if err := dataStore.Seed(context.Background()); err != nil {
		zap.L().Fatal("seed data failed", zap.Error(err))
	}
	zap.L().Info("seed data ready")

	// 5. 初始化事件发布者并启动审计消费
	var publisher mq.EventPublisher
	if conf.KafkaConfig.EventMode == "kafka" {
		publisher = mq.NewKafkaPublisher(&conf.KafkaConfig)
	} else {
		publisher = mq.NewChannelPublisher()
	}
	go publisher.Start()
	zap.L().Info("event publisher started", zap.String("mode", conf.KafkaConfig.EventMode))

	// 6. 初始化 Service 层与 Handler 层（依赖注入）
	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("init validator translator failed", zap.Error(err))
	}
	services := service.NewServices(dataStore, publisher, &conf.GeminiConfig)
	handlers := handler.NewHandlers(services)

	// 7. 初始化 HTTP 服务器并启动
	engine := https_server.Init(handlers)
	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		zap.L().Info("server listening", zap.String("addr", addr))
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 8. 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down server...")
	publisher.Close()
	if err := store.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	zap.L().Info("server stopped")
}

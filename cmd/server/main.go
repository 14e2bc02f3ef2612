// Package main 是应用程序的入口点。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"qa-service-go/internal/config"
	"qa-service-go/internal/handler"
	"qa-service-go/internal/middleware"
	"qa-service-go/internal/model"
	"qa-service-go/internal/repository"
	"qa-service-go/internal/router"
	"qa-service-go/internal/service"
	"qa-service-go/pkg/database"
	"qa-service-go/pkg/events"
	"qa-service-go/pkg/kafka"
	"qa-service-go/pkg/log"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. 初始化配置
	config.Init(*configPath)
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、表结构和 Redis
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("数据库连接失败", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("关闭数据库连接失败", err)
		}
	}()
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, model.All()...); err != nil {
			log.Fatal("数据库迁移失败", err)
		}
		log.Info("数据库表结构已同步")
	}

	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatal("Redis 连接失败", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// 4. 初始化事件投递
	var publisher events.Publisher = events.Nop{}
	if cfg.Kafka.Brokers != "" {
		producer := kafka.NewProducer(cfg.Kafka)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error("关闭 Kafka 生产者失败", err)
			}
		}()
		publisher = producer
	}

	// 5. 初始化 Repository 与 Service (依赖注入)
	uow := database.NewUnitOfWork(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	questionService := service.NewQuestionService(uow, questionRepo, publisher, cfg.Pagination.MaxLimit)
	answerService := service.NewAnswerService(uow, questionRepo, answerRepo, publisher)

	// 6. 设置 Gin 模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	var writeMiddleware []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		writeMiddleware = append(writeMiddleware, middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window))
		log.Infof("写接口限流已启用: %d 次 / %s", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	r := router.New(router.Handlers{
		Question: handler.NewQuestionHandler(questionService, cfg.Pagination.DefaultLimit),
		Answer:   handler.NewAnswerHandler(answerService),
		Health:   handler.NewHealthHandler(db, rdb),
	}, writeMiddleware...)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务监听失败: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP 服务器关闭失败", err)
		return
	}
	log.Info("服务已优雅关闭")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"podcastgen/internal/api"
	"podcastgen/internal/config"
	"podcastgen/internal/llm"
	"podcastgen/internal/pipeline"
	"podcastgen/internal/poller"
	"podcastgen/internal/store"
)

func main() {
	// 初始化日志
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)

	settings := config.Load()
	ctx := context.Background()

	// 初始化持久层
	st, err := store.Open(settings.MySQLDSN())
	if err != nil {
		logrus.Fatalf("连接数据库失败: %v", err)
	}

	// 初始化LLM能力，未配置时降级为无模型模式
	stages, err := llm.NewStagesFromSettings(ctx, settings)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			logrus.Fatalf("初始化LLM客户端失败: %v", err)
		}
		logrus.Warn("未配置LLM服务商，脚本生成将以降级模式运行")
		stages = nil
	}

	orch := pipeline.NewOrchestrator(stages, st, settings.DefaultLanguage)

	// 初始化Gin路由
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
	router.Use(api.JWTAuth(settings.JWTSecret))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "AI播客生成后端服务已启动"})
	})
	api.NewHandler(st, orch).Register(router)

	// 启动后台任务轮询器
	pollCtx, cancelPoll := context.WithCancel(ctx)
	go poller.New(st, orch, settings.PollInterval).Start(pollCtx)

	srv := &http.Server{
		Addr:    settings.ListenAddr,
		Handler: router,
	}

	// 在goroutine中启动服务器
	go func() {
		logrus.Infof("服务器启动在 %s", settings.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("启动服务器失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("关闭服务器...")

	cancelPoll()
	if err := srv.Close(); err != nil {
		logrus.Fatalf("服务器关闭失败: %v", err)
	}
	logrus.Info("服务器已关闭")
}

package main

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yatube/internal/app"
	"yatube/internal/config"
	"yatube/internal/pkg"
	"yatube/internal/pkg/logger"
	"yatube/internal/pkg/storage"
	"yatube/internal/repository/mysql"
	"yatube/internal/repository/redis"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	if err := config.LoadConfig("./configs"); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	// 初始化日志
	logger.InitLogger(cfg.Log.Level)
	gin.SetMode(cfg.Server.Mode)

	// 数据库连接
	db, err := mysql.InitDB(cfg.DB)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}
	if cfg.DB.AutoMigrate {
		if err = mysql.Migrate(db); err != nil {
			log.Error("Fatal error: failed to migrate database", "err", err)
			panic(err)
		}
	}

	// Redis 连接
	rdb, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Error("Fatal error: failed to create redis connection", "err", err)
		panic(err)
	}
	defer rdb.Close()

	// 图片存储
	store, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		log.Error("Fatal error: failed to initialize storage", "err", err)
		panic(err)
	}

	// outbox 投递目标
	sender := service.Sender(service.LogSender)
	if len(cfg.Kafka.Brokers) > 0 {
		producer := pkg.NewKafkaProducer(cfg.Kafka)
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}

	// 依赖注入
	application, err := app.BuildApplication(cfg, app.Infra{
		DB:     db,
		Redis:  rdb,
		Store:  store,
		Mailer: pkg.NewMailer(cfg.SMTP),
		Sender: sender,
	})
	if err != nil {
		log.Error("Fatal error: failed to create application", "err", err)
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	if err = application.CronMgr.RegisterJobs(); err != nil {
		log.Error("Fatal error: failed to start cron jobs", "err", err)
		panic(err)
	}
	application.CronMgr.Start()
	g.Go(func() error {
		<-ctx.Done()
		application.CronMgr.Stop()
		return nil
	})

	// outbox 投递
	g.Go(func() error {
		log.Info("Outbox relayer starting...")
		application.Relayer.Run(ctx)
		return nil
	})

	// HTTP 服务器
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: application.Router,
	}
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("App exited with error", "err", err)
	}
	log.Info("App exited successfully.")
}

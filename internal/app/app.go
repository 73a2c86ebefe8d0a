// Package app 组装各层依赖
package app

import (
	"fmt"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/handler"
	"yatube/internal/job"
	"yatube/internal/pkg"
	"yatube/internal/pkg/storage"
	"yatube/internal/router"
	"yatube/internal/service"
	"yatube/internal/web"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Infra 外部连接, 由 main 或测试创建
type Infra struct {
	DB     *gorm.DB
	Redis  *goredis.Client
	Store  storage.Store
	Mailer pkg.Mailer
	Sender service.Sender
}

type Application struct {
	Router  *gin.Engine
	Relayer *service.OutboxRelayer
	CronMgr *job.Manager
}

func BuildApplication(cfg *config.Config, infra Infra) (*Application, error) {
	if infra.Sender == nil {
		infra.Sender = service.LogSender
	}
	if infra.Mailer == nil {
		infra.Mailer = pkg.LogMailer{}
	}

	tokens := pkg.NewTokenManager(cfg.JWT)

	// Service
	feedSvc := service.NewFeedService(infra.DB)
	postSvc := service.NewPostService(infra.DB, infra.Store, cfg.Storage.MaxSize)
	groupSvc := service.NewGroupService(infra.DB)
	followSvc := service.NewFollowService(infra.DB)
	emailSvc := service.NewEmailService(infra.DB, infra.Redis, infra.Mailer)
	userSvc := service.NewUserService(infra.DB, infra.Redis, tokens, emailSvc)

	// Handler
	postHandler := handler.NewPostHandler(feedSvc, postSvc, groupSvc)
	followHandler := handler.NewFollowHandler(followSvc)
	userHandler := handler.NewUserHandler(userSvc, emailSvc, cfg.JWT.RefreshTTLDuration())

	pageCache, err := cache.New(cfg.Cache, infra.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}
	tmpl, err := web.Templates(infra.Store.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	opts := router.Options{
		Templates:  tmpl,
		Auth:       userSvc,
		RefreshTTL: cfg.JWT.RefreshTTLDuration(),
		PageCache:  pageCache,
		IndexTTL:   cfg.Cache.IndexTTLDuration(),
		MediaURL:   cfg.Storage.MediaURL,
		Post:       postHandler,
		Follow:     followHandler,
		User:       userHandler,
	}
	if cfg.Storage.Driver == "local" || cfg.Storage.Driver == "" {
		opts.MediaRoot = cfg.Storage.MediaRoot
	}

	cleanup := job.NewOutboxCleanupJob(infra.DB, cfg.Outbox.RetentionDays)

	return &Application{
		Router:  router.InitRouter(opts),
		Relayer: service.NewOutboxRelayer(infra.DB, cfg.Outbox, infra.Sender),
		CronMgr: job.NewCronManager(cfg.Outbox.CleanupSpec, cleanup),
	}, nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Buddy_Community/internal/config"
	"Buddy_Community/internal/logger"
	"Buddy_Community/internal/pkg"
	"Buddy_Community/internal/policy"
	"Buddy_Community/internal/repository/mysql"
	"Buddy_Community/internal/repository/redis"
	"Buddy_Community/internal/router"
	"Buddy_Community/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)
	pkg.InitJWT(cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mysql.InitDB(cfg.DSN(), log, cfg.LogLevel); err != nil {
		log.Fatal("connect mysql failed", zap.Error(err))
	}
	// 自动建表（开发阶段 OK）
	if err := mysql.Setup(mysql.DB, cfg.DBAutoMigrate); err != nil {
		log.Fatal("setup schema failed", zap.Error(err))
	}

	// 连接redis，未配置时不做吊销检查
	var tokens service.TokenStore
	rdb, err := redis.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("connect redis failed", zap.Error(err))
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		tokens = redis.NewTokenRepository(rdb)
	} else {
		log.Warn("REDIS_ADDR not set, token revocation disabled")
	}

	sender := service.LogSender(log)
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
		if err != nil {
			log.Fatal("create kafka producer failed", zap.Error(err))
		}
		defer func() { _ = producer.Close() }()
		sender = service.KafkaSender(producer)
	}

	db := mysql.DB
	users := &mysql.UserRepository{DB: db}
	svc := service.NewCommunityService(service.Stores{
		Users:       users,
		Avatars:     &mysql.AvatarRepository{DB: db},
		Communities: &mysql.CommunityRepository{DB: db},
		Posts:       &mysql.PostRepository{DB: db},
		Comments:    &mysql.CommentRepository{DB: db},
		Likes:       &mysql.PostLikeRepository{DB: db},
	}, policy.Rules{AdminOverride: cfg.AdminDeleteOverride})

	// 后台任务
	go service.NewOutboxRelayer(&mysql.OutboxRepository{DB: db}, sender, cfg.OutboxInterval, log).Run(ctx)
	go service.NewLikeCountReconciler(&mysql.LikeCountReconcilerRepo{DB: db}, cfg.ReconcileInterval, log).Run(ctx)

	r := router.InitRouter(router.Deps{
		Community:          svc,
		Identity:           service.NewIdentityResolver(users, tokens),
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
}

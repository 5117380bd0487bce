package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/internal/api"
	"github.com/d60-Lab/blog-service/internal/api/handler"
	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/cache"
	"github.com/d60-Lab/blog-service/internal/config"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/internal/observability"
	"github.com/d60-Lab/blog-service/internal/repository"
	"github.com/d60-Lab/blog-service/internal/service"
	"github.com/d60-Lab/blog-service/internal/upload"
	"github.com/d60-Lab/blog-service/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	if cfg.JWT.Secret == "" {
		panic("BLOG_JWT_SECRET must be set")
	}
	if err := logger.Init(cfg.Server.Debug); err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	defer logger.Sync()

	if err := observability.InitSentry(cfg.Sentry, cfg.Server.Debug); err != nil {
		logger.Fatal("init sentry", zap.Error(err))
	}
	defer observability.FlushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.Trace)
	if err != nil {
		logger.Fatal("init tracer", zap.Error(err))
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	db, err := openDB(cfg.Database)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.SavedPost{}, &model.CategoryStat{}); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("connect redis", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	savedRepo := repository.NewSavedPostRepository(db)

	counter := service.NewViewCounter(postRepo, 0)
	stopCounter := counter.Start(2)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	uploader := upload.NewClient(cfg.Cloudinary.CloudName, cfg.Cloudinary.UploadPreset)
	postCache := cache.NewPostCache(rdb, cfg.Cache.TTL)

	authService := service.NewAuthService(userRepo, savedRepo, tokens, uploader)
	postService := service.NewPostService(postRepo, postCache, counter)
	savedService := service.NewSavedService(savedRepo)

	h := handler.New(authService, postService, savedService)
	router := api.NewRouter(cfg, h, tokens, func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			return err
		}
		return rdb.Ping(context.Background()).Err()
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := stopCounter(shutdownCtx); err != nil {
		logger.Error("view counter shutdown", zap.Error(err))
	}
	_ = rdb.Close()
}

func openDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	case "sqlite", "":
		return gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

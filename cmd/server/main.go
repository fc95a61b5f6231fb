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
	"time"

	"go.uber.org/zap"

	"hostel-drishti/backend/config"
	"hostel-drishti/backend/internal/api/handler"
	"hostel-drishti/backend/internal/api/middleware"
	"hostel-drishti/backend/internal/api/router"
	"hostel-drishti/backend/internal/repository"
	"hostel-drishti/backend/internal/service"
	"hostel-drishti/backend/pkg/database"
	"hostel-drishti/backend/pkg/jwt"
	applogger "hostel-drishti/backend/pkg/logger"
	"hostel-drishti/backend/pkg/redis"
	"hostel-drishti/backend/pkg/storage"
	"hostel-drishti/backend/pkg/validation"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ./config/config.yaml)")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting hostel-drishti api",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("storage", cfg.Storage.Driver),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	// 3.1 migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. redis (optional: logout revocation and rate limiting are disabled without it)
	var (
		blacklist service.TokenBlacklist
		revoked   middleware.Blacklist
		limiter   middleware.Limiter
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token blacklist and rate limiting disabled", zap.Error(err))
		rdb = nil
	} else {
		blacklist, revoked, limiter = rdb, rdb, rdb
	}

	// 5. jwt + binding rules
	jwtMgr := jwt.NewManager(&cfg.Auth)
	if err := validation.RegisterGin(); err != nil {
		logger.Fatal("register validation rules failed", zap.Error(err))
	}

	// 6. image store
	setupCtx, setupCancel := context.WithTimeout(context.Background(), 15*time.Second)
	images, err := storage.Setup(setupCtx, &cfg.Storage, cfg.Server.BaseURL, logger)
	setupCancel()
	if err != nil {
		logger.Fatal("image store setup failed", zap.Error(err))
	}

	// 7. Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, blacklist, images.Store, logger)
	h := handler.NewHandler(svc, handler.UploadLimits{
		MaxFileBytes: cfg.Storage.MaxFileBytes,
		Timeout:      cfg.Storage.UploadTimeout,
	}, images.Images)

	// 8. router
	engine := router.Setup(cfg, h, router.Deps{
		JWT:        jwtMgr,
		Blacklist:  revoked,
		Limiter:    limiter,
		UploadsDir: images.Disk.Dir(),
		DB:         db,
	}, logger)

	// 9. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if err := images.Close(ctx); err != nil {
		logger.Error("image store close failed", zap.Error(err))
	}

	_ = sqlDB.Close()

	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("server stopped")
}

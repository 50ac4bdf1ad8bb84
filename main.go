package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-scoundrel/config"
	"go-scoundrel/controller"
	"go-scoundrel/middleware"
	"go-scoundrel/repository"
	"go-scoundrel/router"
	"go-scoundrel/service"
	"go-scoundrel/utils"
	"go-scoundrel/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	logger, err := utils.NewLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := repository.NewRedis(ctx, cfg)
	if err != nil {
		logger.Fatal("redis unavailable", zap.Error(err))
	}
	defer rdb.Close()
	logger.Info("redis connected", zap.String("addr", cfg.RedisAddr))

	board, closeBoard, err := repository.OpenLeaderboard(ctx, cfg, rdb)
	if err != nil {
		logger.Fatal("open leaderboard failed", zap.String("backend", cfg.LeaderboardBackend), zap.Error(err))
	}
	defer func() { _ = closeBoard() }()

	playerStore := repository.NewRedisPlayerStore(rdb)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	leaderboardSvc := service.NewLeaderboardService(board, playerStore, logger, service.LeaderboardOptions{
		IPHashSalt: cfg.IPHashSalt,
		Cooldown:   cfg.SubmitCooldown,
		Location:   cfg.Location(),
	})
	profileSvc := service.NewProfileService(playerStore, logger, cfg.Location())
	playerSvc := service.NewPlayerService(tokens)
	hub := ws.NewHub(playerSvc, profileSvc, playerStore, logger, cfg.CORSOrigins)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logger(logger), middleware.Recovery(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.InitRouter(r, router.Handlers{
		Leaderboard: controller.NewLeaderboardController(leaderboardSvc, logger),
		Player:      controller.NewPlayerController(playerSvc, profileSvc, logger),
		Auth:        playerSvc,
		Hub:         hub,
	})

	go hub.ScheduleDailyReset(ctx, cfg.SessionResetHour, cfg.Location())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("leaderboard_backend", cfg.LeaderboardBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

// 未配置 CORS_ORIGINS 时允许所有来源
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

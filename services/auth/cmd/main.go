package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spark/pkg/config"
	"spark/pkg/db"
	"spark/pkg/logger"
	"spark/pkg/mq"
	"spark/pkg/redis"
	"spark/services/auth/handler"
	"spark/services/auth/repository"
	"spark/services/auth/service"
	"spark/services/auth/transport"
	user_event "spark/services/user/event"
	user_repository "spark/services/user/repository"
	user_service "spark/services/user/service"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("설정 로드 실패")
	}

	mqClient, err := mq.ConnectToRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("RabbitMQ 연결 실패")
	}
	defer mqClient.Close()

	if err := logger.Init(cfg.Log, logger.ServiceTypeAuth, mqClient); err != nil {
		log.Fatal().Err(err).Msg("로거 초기화 실패")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Redis 연결 실패")
	}
	defer redisClient.Close()

	dbConn, err := db.ConnectMySQL(cfg.MySQL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("MySQL 연결 실패")
	}

	// 의존성 주입 (DI)
	userRepo := user_repository.NewUserRepository(dbConn)
	if err := userRepo.InitDB(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to User DB Migration")
	}
	userService := user_service.NewUserService(userRepo, user_event.NewEmitter(mqClient))

	authRepo := repository.NewAuthRepository(redisClient, cfg.Session.TTL)
	authService := service.NewAuthService(authRepo, userService, cfg.Session.MasterKeyEnabled)
	authHandler := handler.NewAuthHandler(authService, cfg.Session.CookieName, cfg.Session.TTL)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Service.Port),
		Handler: transport.NewRouter(authHandler),
	}

	go func() {
		logger.Logger.Info().Int("port", cfg.Service.Port).Msg("🚀 Auth Service Started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

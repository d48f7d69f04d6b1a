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
	"spark/pkg/logger"
	"spark/pkg/mq"
	"spark/pkg/redis"
	"spark/services/gateway/handler"
	"spark/services/gateway/transport"

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

	if err := logger.Init(cfg.Log, logger.ServiceTypeGateway, mqClient); err != nil {
		log.Fatal().Err(err).Msg("로거 초기화 실패")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Redis 연결 실패")
	}
	defer redisClient.Close()

	gatewayHandler, err := handler.NewGatewayHandler(map[string]string{
		"user":  cfg.Services.UserURL,
		"match": cfg.Services.MatchURL,
		"auth":  cfg.Services.AuthURL,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("게이트웨이 설정 실패")
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Service.Port),
		Handler: transport.NewRouter(gatewayHandler, redisClient, cfg.Session.CookieName),
	}

	go func() {
		logger.Logger.Info().Int("port", cfg.Service.Port).Msg("🚀 Gateway Service Started")
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

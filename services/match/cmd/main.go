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
	"spark/services/match/event"
	"spark/services/match/handler"
	"spark/services/match/service"
	"spark/services/match/transport"
	userrepo "spark/services/user/repository"

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

	if err := logger.Init(cfg.Log, logger.ServiceTypeMatch, mqClient); err != nil {
		log.Fatal().Err(err).Msg("로거 초기화 실패")
	}

	if err := mqClient.DeclareExchange(mq.ExchangeMatchEvents, mq.ExchangeTypeFanout); err != nil {
		logger.Logger.Fatal().Err(err).Msg("match_events exchange 선언 실패")
	}
	if err := mqClient.DeclareExchange(mq.ExchangeLog, mq.ExchangeTypeFanout); err != nil {
		logger.Logger.Fatal().Err(err).Msg("log exchange 선언 실패")
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
	if err := db.Migrate(dbConn); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to Match DB Migration")
	}

	// 의존성 주입 (DI)
	emitter := event.NewEmitter(mqClient)
	matchService := service.NewMatchService(dbConn, emitter, service.NewNotifier(), cfg.Match)
	matchHandler := handler.NewMatchHandler(matchService)

	consumer := event.NewConsumer(mqClient, matchService)
	if err := consumer.StartListening(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("consumer 시작 실패")
	}

	sweeper := service.NewSweeper(redisClient, userrepo.NewUserRepository(dbConn), userrepo.NewPreferenceRepository(dbConn), cfg.Match.SweepInterval)
	go sweeper.Run(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Service.Port),
		Handler: transport.NewRouter(matchHandler),
	}

	go func() {
		logger.Logger.Info().Int("port", cfg.Service.Port).Msg("🚀 Match Service Started")
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

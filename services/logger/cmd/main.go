package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spark/pkg/config"
	"spark/pkg/db"
	"spark/pkg/logger"
	"spark/pkg/mq"
	"spark/services/logger/event"
	"spark/services/logger/repo"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("설정 로드 실패")
	}

	// 로거 서비스 자신의 로그는 다시 발행하지 않음
	if err := logger.Init(cfg.Log, logger.ServiceTypeLogger, nil); err != nil {
		log.Fatal().Err(err).Msg("로거 초기화 실패")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := db.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("MongoDB 연결 실패")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	mqClient, err := mq.ConnectToRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("RabbitMQ 연결 실패")
	}
	defer mqClient.Close()

	logRepo := repo.NewLogRepository(mongoClient, cfg.Mongo.Database)
	if err := logRepo.EnsureIndexes(ctx); err != nil {
		logger.Logger.Warn().Err(err).Msg("log index 생성 실패")
	}

	eventConsumer := event.NewConsumer(mqClient, logRepo)
	if err := eventConsumer.StartListening(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("consumer 시작 실패")
	}

	logger.Logger.Info().Msg("🚀 Logger Service Started")
	<-ctx.Done()
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"spark/pkg/config"
	"spark/pkg/logger"
	"spark/pkg/mq"
	"spark/services/push/event"
	"spark/services/push/onesignal"

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

	if err := logger.Init(cfg.Log, logger.ServiceTypePush, mqClient); err != nil {
		log.Fatal().Err(err).Msg("로거 초기화 실패")
	}

	pusher := onesignal.NewClient(cfg.Push)
	if !pusher.Enabled() {
		logger.Logger.Warn().Msg("ONESIGNAL_APP_ID / ONESIGNAL_API_KEY not set, pushes will be skipped")
	}

	consumer := event.NewConsumer(mqClient, pusher)
	if err := consumer.StartListening(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("consumer 시작 실패")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Logger.Info().Msg("🚀 Push Service Started")
	<-ctx.Done()
}

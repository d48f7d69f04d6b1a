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
	"spark/services/user/event"
	"spark/services/user/handler"
	"spark/services/user/repository"
	"spark/services/user/service"
	"spark/services/user/transport"

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

	if err := logger.Init(cfg.Log, logger.ServiceTypeUser, mqClient); err != nil {
		log.Fatal().Err(err).Msg("로거 초기화 실패")
	}

	if err := mqClient.DeclareExchange(mq.ExchangeUserEvents, mq.ExchangeTypeFanout); err != nil {
		logger.Logger.Fatal().Err(err).Msg("user_events exchange 선언 실패")
	}
	if err := mqClient.DeclareExchange(mq.ExchangeLog, mq.ExchangeTypeFanout); err != nil {
		logger.Logger.Fatal().Err(err).Msg("log exchange 선언 실패")
	}

	dbConn, err := db.ConnectMySQL(cfg.MySQL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("MySQL 연결 실패")
	}

	// 의존성 주입 (DI)
	userRepo := repository.NewUserRepository(dbConn)
	if err := userRepo.InitDB(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to User DB Migration")
	}
	prefRepo := repository.NewPreferenceRepository(dbConn)

	emitter := event.NewEmitter(mqClient)

	userService := service.NewUserService(userRepo, emitter)
	userHandler := handler.NewUserHandler(userService)

	preferenceService := service.NewPreferenceService(prefRepo)
	preferenceHandler := handler.NewPreferenceHandler(preferenceService)

	router := transport.NewRouter(userHandler, preferenceHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Service.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Logger.Info().Int("port", cfg.Service.Port).Msg("🚀 User Service Started")
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

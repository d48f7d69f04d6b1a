package logger

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"spark/pkg/config"
	"spark/pkg/helper"
	"spark/pkg/mq"

	eventtypes "spark/pkg/types/eventtype"

	"github.com/rs/zerolog"
)

var (
	// Logger는 전역 로거 인스턴스, Init 전에는 아무것도 출력하지 않습니다
	Logger = zerolog.Nop()

	mu             sync.RWMutex
	publisher      mq.Publisher
	currentService ServiceType
)

const (
	ServiceTypeGateway ServiceType = iota
	ServiceTypeAuth
	ServiceTypeUser
	ServiceTypeMatch
	ServiceTypeLogger
	ServiceTypePush
)

// ServiceType은 서비스 타입을 나타내는 정수입니다
type ServiceType int

func (s ServiceType) String() string {
	switch s {
	case ServiceTypeGateway:
		return "gateway"
	case ServiceTypeAuth:
		return "auth"
	case ServiceTypeUser:
		return "user"
	case ServiceTypeMatch:
		return "match"
	case ServiceTypeLogger:
		return "logger"
	case ServiceTypePush:
		return "push"
	}
	return "unknown"
}

const (
	// 좋아요/싫어요 이벤트
	LogEventLike LogEventType = iota
	LogEventDislike

	// 매칭 이벤트
	LogEventMatchCreated

	// 싫어요 만료 정리
	LogEventDislikesPruned
	LogEventSweepCompleted

	// 경고 이벤트
	LogEventWarning

	// 에러 이벤트
	LogEventError
)

// LogEventType은 로그 이벤트 타입을 나타내는 정수입니다
type LogEventType int

// BaseLog는 로그의 기본 구조를 정의합니다
type BaseLog struct {
	Level        string      `json:"level" bson:"level"`
	Timestamp    time.Time   `json:"timestamp" bson:"timestamp"`
	Service      int         `json:"service" bson:"service"`
	LogEventType int         `json:"log_event_type" bson:"log_event_type"`
	Message      string      `json:"message" bson:"message"`
	Log          interface{} `json:"log" bson:"log"`
}

// Init은 로거를 초기화합니다. pub이 nil이거나 cfg.Ship이 false면 로컬 출력만 합니다
func Init(cfg config.LogConfig, serviceType ServiceType, pub mq.Publisher) error {
	return InitWithWriter(cfg, serviceType, pub, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

func InitWithWriter(cfg config.LogConfig, serviceType ServiceType, pub mq.Publisher, out io.Writer) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339

	mu.Lock()
	defer mu.Unlock()

	if pub != nil && cfg.Ship {
		publisher = pub
	} else {
		publisher = nil
	}
	currentService = serviceType

	Logger = zerolog.New(out).
		Level(level).
		With().
		Str("service", serviceType.String()).
		Timestamp().
		Logger()

	return nil
}

// Log는 로컬로 출력하고, 설정된 경우 BaseLog를 log exchange로 발행합니다
func Log(level zerolog.Level, logEventType LogEventType, message string, logData interface{}) {
	Logger.WithLevel(level).
		Int("log_event_type", int(logEventType)).
		Interface("log", logData).
		Msg(message)

	mu.RLock()
	pub := publisher
	service := currentService
	mu.RUnlock()

	if pub == nil || level < Logger.GetLevel() {
		return
	}

	baseLog := BaseLog{
		Level:        level.String(),
		Timestamp:    time.Now().UTC(),
		Service:      int(service),
		LogEventType: int(logEventType),
		Message:      message,
		Log:          logData,
	}

	eventPayload := eventtypes.EventPayload{
		EventType: eventtypes.EventTypeLog,
		Data:      helper.ToJSON(baseLog),
	}

	jsonData, err := json.Marshal(eventPayload)
	if err != nil {
		Logger.Error().Err(err).Msg("Failed to marshal log data")
		return
	}

	if err := pub.PublishMessage(mq.ExchangeLog, "", jsonData); err != nil {
		Logger.Error().Err(err).Msg("Failed to publish log message")
	}
}

// Debug는 debug 레벨 로그를 출력합니다
func Debug(logEventType LogEventType, message string, logData interface{}) {
	Log(zerolog.DebugLevel, logEventType, message, logData)
}

// Info는 info 레벨 로그를 출력합니다
func Info(logEventType LogEventType, message string, logData interface{}) {
	Log(zerolog.InfoLevel, logEventType, message, logData)
}

// Warn은 warn 레벨 로그를 출력합니다
func Warn(logEventType LogEventType, message string, logData interface{}) {
	Log(zerolog.WarnLevel, logEventType, message, logData)
}

// Error는 error 레벨 로그를 출력합니다
func Error(logEventType LogEventType, message string, logData interface{}) {
	Log(zerolog.ErrorLevel, logEventType, message, logData)
}

// WithContext는 추가 컨텍스트를 포함한 로거를 반환합니다
func WithContext(fields map[string]interface{}) zerolog.Logger {
	return Logger.With().Fields(fields).Logger()
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spark/pkg/config"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// ErrNotFound는 키가 존재하지 않을 때 반환됩니다
var ErrNotFound = errors.New("redis: key not found")

type RedisClient struct {
	Client *redis.Client
}

// Redis 클라이언트 생성
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 연결 확인
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("addr", cfg.Addr()).Msg("Failed to connect to Redis")
		return nil, err
	}

	return &RedisClient{Client: rdb}, nil
}

// NewFromAddr는 주소만으로 클라이언트를 만듭니다 (테스트의 miniredis 용)
func NewFromAddr(addr string) *RedisClient {
	return &RedisClient{Client: redis.NewClient(&redis.Options{Addr: addr})}
}

// 데이터 저장
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := r.Client.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to set key in Redis")
		return err
	}
	return nil
}

// 데이터 조회
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("key %s: %w", key, ErrNotFound)
	} else if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to get key from Redis")
		return "", err
	}
	return val, nil
}

// 데이터 삭제
func (r *RedisClient) Delete(ctx context.Context, key string) error {
	if err := r.Client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to delete key from Redis")
		return err
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.Client.Close()
}

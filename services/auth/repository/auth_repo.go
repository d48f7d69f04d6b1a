package repository

import (
	"context"
	"time"

	"spark/pkg/apperror"
)

// SessionStore는 redis 세션 저장소입니다 (redis.RedisClient)
type SessionStore interface {
	CreateSession(ctx context.Context, userID int, ttl time.Duration) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type AuthRepository struct {
	store SessionStore
	ttl   time.Duration
}

func NewAuthRepository(store SessionStore, ttl time.Duration) *AuthRepository {
	return &AuthRepository{store: store, ttl: ttl}
}

// 세션 생성 및 저장
func (repo *AuthRepository) CreateSession(ctx context.Context, userID int) (string, error) {
	sessionID, err := repo.store.CreateSession(ctx, userID, repo.ttl)
	if err != nil {
		return "", apperror.Internal("failed to create session", err)
	}
	return sessionID, nil
}

func (repo *AuthRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := repo.store.DeleteSession(ctx, sessionID); err != nil {
		return apperror.Internal("failed to delete session", err)
	}
	return nil
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const sessionKeyPrefix = "session:"

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// CreateSession은 uuid 세션을 만들고 user id 를 ttl 동안 저장합니다
func (r *RedisClient) CreateSession(ctx context.Context, userID int, ttl time.Duration) (string, error) {
	sessionID := uuid.NewString()
	if err := r.Set(ctx, sessionKey(sessionID), userID, ttl); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sessionID, nil
}

func (r *RedisClient) GetUserBySessionID(ctx context.Context, sessionID string) (int, error) {
	if sessionID == "" {
		return 0, ErrNotFound
	}

	sUserID, err := r.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error().Err(err).Msg("Get Session Error")
		}
		return 0, err
	}

	userID, err := strconv.Atoi(sUserID)
	if err != nil || userID <= 0 {
		log.Warn().Str("value", sUserID).Msg("Failed to Atoi session user id")
		return 0, fmt.Errorf("session %s holds invalid user id: %w", sessionID, ErrNotFound)
	}

	return userID, nil
}

func (r *RedisClient) DeleteSession(ctx context.Context, sessionID string) error {
	return r.Delete(ctx, sessionKey(sessionID))
}

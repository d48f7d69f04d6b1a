package service

import (
	"context"
	"time"

	"spark/pkg/logger"
	"spark/pkg/models"
	userrepo "spark/services/user/repository"
)

const (
	sweepLockKey   = "lock:dislike_sweep"
	sweepBatchSize = 100
)

// Locker는 여러 인스턴스 중 하나만 정리 작업을 하도록 합니다 (redis.RedisClient)
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	ReleaseLock(ctx context.Context, key, token string) error
}

// Sweeper는 주기적으로 전체 사용자의 만료된 싫어요를 정리합니다
type Sweeper struct {
	locker   Locker
	userRepo *userrepo.UserRepository
	prefRepo *userrepo.PreferenceRepository
	interval time.Duration
	now      func() time.Time
}

func NewSweeper(locker Locker, userRepo *userrepo.UserRepository, prefRepo *userrepo.PreferenceRepository, interval time.Duration) *Sweeper {
	return &Sweeper{
		locker:   locker,
		userRepo: userRepo,
		prefRepo: prefRepo,
		interval: interval,
		now:      time.Now,
	}
}

// Run은 ctx 가 끝날 때까지 interval 마다 SweepOnce 를 실행합니다
func (s *Sweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	logger.Logger.Info().Dur("interval", s.interval).Msg("🧹 Starting dislike sweeper")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := s.SweepOnce(ctx); err != nil {
				logger.Error(logger.LogEventError, "dislike sweep failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

// SweepOnce는 락을 잡은 경우에만 전체를 정리하고 (정리한 항목 수, 실행 여부)를 돌려줍니다
func (s *Sweeper) SweepOnce(ctx context.Context) (int, bool, error) {
	ttl := s.interval
	if ttl <= 0 {
		ttl = time.Minute
	}

	token, ok, err := s.locker.AcquireLock(ctx, sweepLockKey, ttl)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	defer func() {
		if err := s.locker.ReleaseLock(context.Background(), sweepLockKey, token); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to release sweep lock")
		}
	}()

	now := s.now()
	total, users := 0, 0
	err = s.userRepo.ForEachBatch(ctx, sweepBatchSize, func(batch []models.User) error {
		for i := range batch {
			prefs := batch[i].Preferences
			removed := prefs.PruneDislikes(now)
			if removed == 0 {
				continue
			}
			if err := s.prefRepo.SavePreferences(ctx, batch[i].ID, prefs); err != nil {
				return err
			}
			total += removed
			users++
		}
		return nil
	})
	if err != nil {
		return total, true, err
	}

	logger.Info(logger.LogEventSweepCompleted, "dislike sweep completed", map[string]int{
		"pruned": total,
		"users":  users,
	})
	return total, true, nil
}

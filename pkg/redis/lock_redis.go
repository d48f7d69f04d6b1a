package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// 토큰이 일치할 때만 삭제
var releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// AcquireLock은 SETNX 로 ttl 동안 유지되는 락을 잡습니다.
// 잡지 못하면 빈 토큰과 false 를 돌려줍니다.
func (r *RedisClient) AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := r.Client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (r *RedisClient) ReleaseLock(ctx context.Context, key, token string) error {
	return r.Client.Eval(ctx, releaseScript, []string{key}, token).Err()
}

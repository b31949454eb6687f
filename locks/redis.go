package locks

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultLeaseTTL   = 10 * time.Second
	DefaultLockWait   = 5 * time.Second
	lockRetryInterval = 25 * time.Millisecond
)

// releaseScript deletes the lease only if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker takes a SET NX PX lease so that several replicas share one lock per player.
// A lease outlives a crashed holder for at most LeaseTTL.
type RedisLocker struct {
	client   *redis.Client
	LeaseTTL time.Duration
	Wait     time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client, LeaseTTL: DefaultLeaseTTL, Wait: DefaultLockWait}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := "player_lock:" + key
	token := uuid.NewString()

	deadline := time.NewTimer(l.Wait)
	defer deadline.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.LeaseTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, ErrLockTimeout
		case <-time.After(lockRetryInterval):
		}
	}

	return func() {
		// Release on a fresh context: the request context may already be cancelled.
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{redisKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			log.Printf("⚠️ [LOCK] Failed to release %s: %v", redisKey, err)
		}
	}, nil
}

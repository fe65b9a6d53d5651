package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"clublink/internal/config"
	"clublink/internal/domain"
	"clublink/internal/logger"
)

const keyPrefix = "clublink:lock:"

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX, so a lock is shared by every replica.
type RedisLocker struct {
	client redis.UniversalClient
}

func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client}
}

// NewRedisClient builds a client from config and registers the logging hook.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	client.AddHook(&loggingHook{})
	return client
}

// New returns a RedisLocker when Redis is configured and a LocalLocker otherwise.
func New(cfg config.RedisConfig) Locker {
	if cfg.Addr == "" {
		logger.Info("Redis not configured, using in-process run locks")
		return NewLocalLocker()
	}
	return NewRedisLocker(NewRedisClient(cfg))
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, keyPrefix+key, token, ttl).Result()
	if err != nil {
		return nil, domain.Dependency("redis", fmt.Errorf("failed to acquire lock %s: %w", key, err))
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{keyPrefix + key}, token).Err(); err != nil {
			return domain.Dependency("redis", fmt.Errorf("failed to release lock %s: %w", key, err))
		}
		return nil
	}, nil
}

package lock

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"clublink/internal/logger"
)

// loggingHook reports every Redis command at debug level.
type loggingHook struct{}

func (h *loggingHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *loggingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error("Redis command failed", "command", cmd.Name(), "error", err, "duration", time.Since(start))
		} else {
			logger.Debug("Redis command", "command", cmd.Name(), "duration", time.Since(start))
		}
		return err
	}
}

func (h *loggingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		logger.Debug("Redis pipeline", "length", len(cmds), "error", err)
		return err
	}
}

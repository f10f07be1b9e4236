package database

import (
	"context"
	"fmt"
	"time"

	"github.com/BaronguyenVinasu/riftcounter/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultRedisDialTimeout = 5 * time.Second

// RedisClient backs the analysis cache. Health is reported through HealthCheck.
type RedisClient struct {
	Client *redis.Client
	addr   string
	logger *logrus.Logger
}

// NewRedisConnection dials Redis and pings it once within the dial timeout.
// Callers fall back to the in-process cache on error.
func NewRedisConnection(ctx context.Context, cfg config.RedisConfig, logger *logrus.Logger) (*RedisClient, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultRedisDialTimeout
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logger.WithFields(logrus.Fields{
		"addr": addr,
		"db":   cfg.DB,
	}).Info("Connected to Redis analysis cache")

	return &RedisClient{Client: rdb, addr: addr, logger: logger}, nil
}

func (r *RedisClient) Close() {
	if r.Client == nil {
		return
	}
	if err := r.Client.Close(); err != nil && r.logger != nil {
		r.logger.WithError(err).WithField("addr", r.addr).Warn("Failed to close Redis connection")
		return
	}
	if r.logger != nil {
		r.logger.WithField("addr", r.addr).Info("Redis connection closed")
	}
}

func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", r.addr, err)
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"school_records_backend/internal/grading"
	"school_records_backend/pkg/logger"
	"school_records_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ResultCache keeps computed final results per enrollment. A result is stored
// under the fingerprint of the rules and student context it was computed from.
type ResultCache interface {
	Get(ctx context.Context, enrollmentID uint, fingerprint string) (*grading.FinalResult, bool)
	Set(ctx context.Context, enrollmentID uint, fingerprint string, res *grading.FinalResult)
	Invalidate(ctx context.Context, enrollmentID uint)
}

type RedisResultCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{Client: client, TTL: ttl}
}

func resultKey(enrollmentID uint) string {
	return fmt.Sprintf("school_records:result:%d", enrollmentID)
}

func (c *RedisResultCache) Get(ctx context.Context, enrollmentID uint, fingerprint string) (*grading.FinalResult, bool) {
	data, err := c.Client.HGet(ctx, resultKey(enrollmentID), fingerprint).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Result cache read failed", zap.Uint("enrollment_id", enrollmentID), zap.Error(err))
		}
		monitoring.ResultCacheCounter.WithLabelValues("miss").Inc()
		return nil, false
	}

	var res grading.FinalResult
	if err := json.Unmarshal(data, &res); err != nil {
		monitoring.ResultCacheCounter.WithLabelValues("miss").Inc()
		return nil, false
	}
	monitoring.ResultCacheCounter.WithLabelValues("hit").Inc()
	return &res, true
}

func (c *RedisResultCache) Set(ctx context.Context, enrollmentID uint, fingerprint string, res *grading.FinalResult) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	key := resultKey(enrollmentID)
	pipe := c.Client.TxPipeline()
	pipe.HSet(ctx, key, fingerprint, data)
	pipe.Expire(ctx, key, c.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Warn("Result cache write failed", zap.Uint("enrollment_id", enrollmentID), zap.Error(err))
	}
}

func (c *RedisResultCache) Invalidate(ctx context.Context, enrollmentID uint) {
	if err := c.Client.Del(ctx, resultKey(enrollmentID)).Err(); err != nil {
		logger.Log.Warn("Result cache invalidation failed", zap.Uint("enrollment_id", enrollmentID), zap.Error(err))
	}
}

// NoopResultCache is used when redis is not configured.
type NoopResultCache struct{}

func (NoopResultCache) Get(context.Context, uint, string) (*grading.FinalResult, bool) {
	return nil, false
}

func (NoopResultCache) Set(context.Context, uint, string, *grading.FinalResult) {}

func (NoopResultCache) Invalidate(context.Context, uint) {}

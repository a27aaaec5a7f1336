// Package ratelimit 基于 redis_rate 的分布式限流
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// 本服务的限流 key 统一前缀，避免和同一 Redis 上的其他服务互相踩 key
const keyPrefix = "shopping:ratelimit:"

// RateLimiter 限流器接口
type RateLimiter interface {
	// Allow 检查 key 在给定配额下是否放行
	Allow(ctx context.Context, key string, limit Limit) (*Result, error)
}

// Limit 限流配额
type Limit struct {
	// 每个周期允许的请求数
	Rate int
	// 统计周期
	Period time.Duration
	// 突发上限
	Burst int
}

// PerSecond 按 QPS 与突发上限构建配额
func PerSecond(qps, burst int) Limit {
	if burst < qps {
		burst = qps
	}
	return Limit{Rate: qps, Period: time.Second, Burst: burst}
}

// Result 单次限流判定结果
type Result struct {
	// 是否放行
	Allowed bool
	// 当前周期剩余额度
	Remaining int
	// 额度重置剩余时间
	ResetAfter time.Duration
	// 拒绝时建议的重试间隔
	RetryAfter time.Duration
}

// RedisRateLimiter 基于 Redis 的限流器实现，多实例共享额度
type RedisRateLimiter struct {
	limiter *redis_rate.Limiter
}

// NewRedisRateLimiter 创建 Redis 限流器
func NewRedisRateLimiter(rdb *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{
		limiter: redis_rate.NewLimiter(rdb),
	}
}

// Allow 检查 key 是否放行，key 会加上服务前缀
func (r *RedisRateLimiter) Allow(ctx context.Context, key string, limit Limit) (*Result, error) {
	res, err := r.limiter.Allow(ctx, prefixed(key), redis_rate.Limit{
		Rate:   limit.Rate,
		Period: limit.Period,
		Burst:  limit.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	return &Result{
		Allowed:    res.Allowed > 0,
		Remaining:  res.Remaining,
		ResetAfter: res.ResetAfter,
		RetryAfter: res.RetryAfter,
	}, nil
}

func prefixed(key string) string {
	return keyPrefix + key
}

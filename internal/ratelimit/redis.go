package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:" // sorted set per client: ratelimit:{key}

// RedisStore keeps each client's window as a sorted set scored by request
// time in microseconds, so limits are shared by every instance.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

var _ Store = (*RedisStore)(nil)

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("ratelimit: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ratelimit: ping redis: %w", err)
	}
	return client, nil
}

// Allow implements Store. The request is recorded and counted in one
// transaction; when that puts the window over limit the entry is removed again.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	now := s.now()
	k := keyPrefix + key
	windowStart := strconv.FormatInt(now.Add(-window).UnixMicro(), 10)
	member := uuid.NewString()

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "-inf", windowStart)
	pipe.ZAdd(ctx, k, redis.Z{Score: float64(now.UnixMicro()), Member: member})
	card := pipe.ZCard(ctx, k)
	oldest := pipe.ZRangeWithScores(ctx, k, 0, 0)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("ratelimit: record request: %w", err)
	}

	if card.Val() <= int64(limit) {
		return Decision{Allowed: true}, nil
	}

	if err := s.client.ZRem(ctx, k, member).Err(); err != nil {
		return Decision{}, fmt.Errorf("ratelimit: release request: %w", err)
	}
	retry := window
	if zs := oldest.Val(); len(zs) > 0 {
		retry = time.UnixMicro(int64(zs[0].Score)).Add(window).Sub(now)
	}
	return Decision{RetryAfter: retry}, nil
}

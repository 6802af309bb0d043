package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSummaryTTL = 24 * time.Hour

// SummaryCache stores gateway-generated content summaries in redis. A nil
// client turns every call into a miss so the service works without redis.
type SummaryCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSummaryCache(rdb redis.Cmdable, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

func SummaryKey(contentID int64, spoilerFree bool) string {
	return fmt.Sprintf("saga:summary:%d:%t", contentID, spoilerFree)
}

// Get returns ("", false, nil) on a miss.
func (c *SummaryCache) Get(ctx context.Context, contentID int64, spoilerFree bool) (string, bool, error) {
	if c == nil || c.rdb == nil {
		return "", false, nil
	}
	val, err := c.rdb.Get(ctx, SummaryKey(contentID, spoilerFree)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("summary cache get: %w", err)
	}
	return val, true, nil
}

func (c *SummaryCache) Set(ctx context.Context, contentID int64, spoilerFree bool, summary string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	if err := c.rdb.Set(ctx, SummaryKey(contentID, spoilerFree), summary, c.ttl).Err(); err != nil {
		return fmt.Errorf("summary cache set: %w", err)
	}
	return nil
}

// Invalidate drops both variants of a content summary.
func (c *SummaryCache) Invalidate(ctx context.Context, contentID int64) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, SummaryKey(contentID, true), SummaryKey(contentID, false)).Err()
}

// NewRedisClient parses a redis:// URL, falling back to treating it as a
// plain address.
func NewRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	return redis.NewClient(opt)
}

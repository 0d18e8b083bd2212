package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis initializes the Redis connection. The server runs without the
// cache when Redis is unavailable.
func ConnectRedis(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	opt, err := redis.ParseURL(fmt.Sprintf("redis://%s", redisURL))
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

const cacheTTL = 60 * time.Second

// cached loads a JSON value from the cache. A nil client or any cache error
// is a miss.
func (s *Server) cached(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}

// storeCache writes a JSON value with the standard TTL. Failures only cost
// the caching.
func (s *Server) storeCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		s.cache.SetEx(ctx, key, data, cacheTTL)
	}
}

// invalidateAnalytics drops the cached aggregates for a user after any
// income or expense write.
func (s *Server) invalidateAnalytics(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	s.cache.Del(ctx,
		fmt.Sprintf("summary:%d", userID),
		fmt.Sprintf("breakdown:%d", userID),
	)
}

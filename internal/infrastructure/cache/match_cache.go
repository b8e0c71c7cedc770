package cache

import (
	"context"
	"time"

	"emploiplus/internal/domain/matching"

	"go.uber.org/zap"
)

const matchKeyPrefix = "match_"

// MatchKey is the cache key of a (user, job) score.
func MatchKey(userID, jobID string) string {
	return matchKeyPrefix + userID + "_" + jobID
}

// MemoryMatchCache keeps scores in process memory.
type MemoryMatchCache struct {
	store *Memory[matching.MatchScore]
}

func NewMemoryMatchCache(store *Memory[matching.MatchScore]) *MemoryMatchCache {
	return &MemoryMatchCache{store: store}
}

func (c *MemoryMatchCache) Get(_ context.Context, userID, jobID string) (matching.MatchScore, bool) {
	return c.store.Get(MatchKey(userID, jobID))
}

func (c *MemoryMatchCache) Set(_ context.Context, score matching.MatchScore) {
	c.store.Set(MatchKey(score.UserID, score.JobID), score)
}

func (c *MemoryMatchCache) InvalidateUser(_ context.Context, userID string) (int, error) {
	return c.store.DeleteContaining(userID), nil
}

func (c *MemoryMatchCache) Sweep() int {
	return c.store.Sweep()
}

// RedisMatchCache shares scores between replicas. Errors are logged and
// treated as misses.
type RedisMatchCache struct {
	redis  *Redis
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisMatchCache(r *Redis, ttl time.Duration, logger *zap.Logger) *RedisMatchCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisMatchCache{redis: r, ttl: ttl, logger: logger}
}

func (c *RedisMatchCache) Get(ctx context.Context, userID, jobID string) (matching.MatchScore, bool) {
	var out matching.MatchScore
	ok, err := c.redis.GetJSON(ctx, MatchKey(userID, jobID), &out)
	if err != nil {
		c.logger.Warn("Match cache read failed", zap.String("user_id", userID), zap.String("job_id", jobID), zap.Error(err))
		return matching.MatchScore{}, false
	}
	return out, ok
}

func (c *RedisMatchCache) Set(ctx context.Context, score matching.MatchScore) {
	if err := c.redis.SetJSON(ctx, MatchKey(score.UserID, score.JobID), score, c.ttl); err != nil {
		c.logger.Warn("Match cache write failed", zap.String("user_id", score.UserID), zap.String("job_id", score.JobID), zap.Error(err))
	}
}

func (c *RedisMatchCache) InvalidateUser(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	return c.redis.DeleteByPattern(ctx, matchKeyPrefix+"*"+escapeGlob(userID)+"*")
}

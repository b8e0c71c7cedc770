package cache

import (
	"context"
	"errors"
	"time"
)

// MemoryDeduper remembers claimed keys for ttl in process memory.
type MemoryDeduper struct {
	seen *Memory[struct{}]
}

func NewMemoryDeduper(ttl time.Duration, opts ...MemoryOption[struct{}]) *MemoryDeduper {
	return &MemoryDeduper{seen: NewMemory[struct{}](ttl, opts...)}
}

func (d *MemoryDeduper) Claim(_ context.Context, key string) (bool, error) {
	return d.seen.SetIfAbsent(key, struct{}{}), nil
}

// Sweep drops expired claims.
func (d *MemoryDeduper) Sweep() int {
	return d.seen.Sweep()
}

func (d *MemoryDeduper) Release(_ context.Context, key string) error {
	d.seen.Delete(key)
	return nil
}

// RedisDeduper claims keys with SETNX so every replica sees the same claim.
type RedisDeduper struct {
	redis *Redis
	ttl   time.Duration
}

func NewRedisDeduper(r *Redis, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{redis: r, ttl: ttl}
}

// Claim returns an error when Redis cannot answer; callers decide whether to
// proceed without deduplication.
func (d *RedisDeduper) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := d.redis.SetIfNotExists(ctx, "dedup:"+key, "1", d.ttl)
	if err != nil {
		if errors.Is(err, ErrRedisUnavailable) {
			return true, err
		}
		return false, err
	}
	return ok, nil
}

func (d *RedisDeduper) Release(ctx context.Context, key string) error {
	return d.redis.Delete(ctx, "dedup:"+key)
}

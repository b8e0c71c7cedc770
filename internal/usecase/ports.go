package usecase

import (
	"context"

	"emploiplus/internal/domain/matching"
	"emploiplus/internal/worker"
)

// MatchCache stores computed scores per (user, job).
type MatchCache interface {
	Get(ctx context.Context, userID, jobID string) (matching.MatchScore, bool)
	Set(ctx context.Context, score matching.MatchScore)
	InvalidateUser(ctx context.Context, userID string) (int, error)
}

// EventDeduper claims an idempotency key. Claim reports false when the key
// was already claimed within its TTL. Release gives a claim back so a retried
// delivery is processed again.
type EventDeduper interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// TaskRunner accepts background work without waiting for it.
type TaskRunner interface {
	Submit(name string, t worker.Task) error
}

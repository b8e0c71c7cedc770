package scheduler

import (
	"testing"
	"time"

	"emploiplus/internal/infrastructure/cache"
)

type countingSweeper struct {
	calls int
}

func (c *countingSweeper) Sweep() int {
	c.calls++
	return 1
}

func TestScheduler_SweepCallsEverySweeper(t *testing.T) {
	a, b := &countingSweeper{}, &countingSweeper{}
	s := New("@every 1h", map[string]Sweeper{"a": a, "b": b, "nil": nil}, nil)

	s.Sweep()
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected one sweep each, got a=%d b=%d", a.calls, b.calls)
	}
}

func TestScheduler_SweepEvictsExpiredEntries(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := cache.NewMemory[string](time.Minute, cache.WithClock[string](func() time.Time { return now }))
	store.Set("k", "v")

	s := New("@every 1h", map[string]Sweeper{"store": store}, nil)
	now = now.Add(2 * time.Minute)
	s.Sweep()

	if store.Len() != 0 {
		t.Fatalf("expected expired entry swept, len=%d", store.Len())
	}
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := New("not a spec", map[string]Sweeper{"a": &countingSweeper{}}, nil)
	if err := s.Start(); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
}

package usecase

import (
	"context"
	"sync"

	"emploiplus/internal/domain/job"
	"emploiplus/internal/domain/matching"
	"emploiplus/internal/domain/roadmap"
	"emploiplus/internal/domain/user"
	"emploiplus/internal/infrastructure/notification"
	"emploiplus/internal/repository"
	"emploiplus/internal/worker"
)

type fakeProfiles struct {
	byID       map[string]user.Profile
	candidates []user.Profile
	findErr    error
	listErr    error
	findCalls  int
	listCalls  int
}

func (f *fakeProfiles) FindProfile(_ context.Context, id string) (user.Profile, error) {
	f.findCalls++
	if f.findErr != nil {
		return user.Profile{}, f.findErr
	}
	p, ok := f.byID[id]
	if !ok {
		return user.Profile{}, repository.ErrUserNotFound
	}
	return p, nil
}

func (f *fakeProfiles) ListActiveCandidates(context.Context) ([]user.Profile, error) {
	f.listCalls++
	return f.candidates, f.listErr
}

type fakeJobs struct {
	byID map[string]job.Job
	err  error
}

func (f *fakeJobs) FindByID(_ context.Context, id string) (job.Job, error) {
	if f.err != nil {
		return job.Job{}, f.err
	}
	j, ok := f.byID[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

type fakeReqs struct {
	byJob map[string][]matching.Requirement
	err   error
}

func (f *fakeReqs) FindByJobID(_ context.Context, id string) ([]matching.Requirement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byJob[id], nil
}

type fakeFormations struct {
	items []roadmap.Formation
	err   error
	terms []string
}

func (f *fakeFormations) SearchPublished(_ context.Context, term string, limit int) ([]roadmap.Formation, error) {
	f.terms = append(f.terms, term)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.items) > limit {
		return f.items[:limit], nil
	}
	return f.items, nil
}

type fakeLogs struct {
	mu      sync.Mutex
	entries []repository.WebhookLog
}

func (f *fakeLogs) Insert(_ context.Context, e repository.WebhookLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

type fakeSender struct {
	mu    sync.Mutex
	calls [][]string
	res   notification.SendResult
	err   error
}

func (f *fakeSender) NotifyJobOffers(_ context.Context, _ job.Job, ids []string) (notification.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ids)
	return f.res, f.err
}

// queueRunner records tasks without running them so tests observe the state
// before any background work completes.
type queueRunner struct {
	names []string
	tasks []worker.Task
	err   error
}

func (r *queueRunner) Submit(name string, t worker.Task) error {
	if r.err != nil {
		return r.err
	}
	r.names = append(r.names, name)
	r.tasks = append(r.tasks, t)
	return nil
}

func (r *queueRunner) runAll(ctx context.Context) {
	for _, t := range r.tasks {
		_ = t(ctx)
	}
}

type fakeDeduper struct {
	claimed  map[string]bool
	err      error
	released []string
}

func (d *fakeDeduper) Claim(_ context.Context, key string) (bool, error) {
	if d.err != nil {
		return true, d.err
	}
	if d.claimed == nil {
		d.claimed = map[string]bool{}
	}
	if d.claimed[key] {
		return false, nil
	}
	d.claimed[key] = true
	return true, nil
}

func (d *fakeDeduper) Release(_ context.Context, key string) error {
	d.released = append(d.released, key)
	delete(d.claimed, key)
	return nil
}

// Package worker runs best-effort background tasks handed off by request
// handlers. Tasks are not retried and run in no particular order; a failed or
// panicking task is logged and dropped.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrQueueFull = errors.New("worker queue full")
	ErrClosed    = errors.New("worker pool closed")
)

type Task func(ctx context.Context) error

type job struct {
	name string
	run  Task
}

type Pool struct {
	workers int
	timeout time.Duration
	tasks   chan job
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	start  sync.Once

	baseCtx context.Context
	cancel  context.CancelFunc
}

type Options struct {
	Workers   int
	QueueSize int
	// Per-task deadline; zero means no deadline.
	TaskTimeout time.Duration
	Logger      *zap.Logger
}

func NewPool(opts Options) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize < 0 {
		opts.QueueSize = 0
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers: opts.Workers,
		timeout: opts.TaskTimeout,
		tasks:   make(chan job, opts.QueueSize),
		logger:  opts.Logger,
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Start launches the workers. Calling it more than once has no effect.
func (p *Pool) Start() {
	p.start.Do(func() {
		p.wg.Add(p.workers)
		for i := 0; i < p.workers; i++ {
			go p.loop()
		}
	})
}

// Submit queues a task without blocking. It fails with ErrQueueFull when the
// queue is at capacity and ErrClosed after Close.
func (p *Pool) Submit(name string, t Task) error {
	if t == nil {
		return fmt.Errorf("nil task %q", name)
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.tasks <- job{name: name, run: t}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting tasks and waits for queued ones to finish, or for ctx
// to expire, in which case running tasks see their context cancelled.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	p.Start()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}

func (p *Pool) loop() {
	defer p.wg.Done()
	for j := range p.tasks {
		p.runOne(j)
	}
}

func (p *Pool) runOne(j job) {
	ctx := p.baseCtx
	var cancel context.CancelFunc
	if p.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Background task panicked",
				zap.String("task", j.name),
				zap.Any("panic", r),
				zap.Duration("duration", time.Since(start)),
			)
		}
	}()

	if err := j.run(ctx); err != nil {
		p.logger.Error("Background task failed",
			zap.String("task", j.name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	p.logger.Debug("Background task done", zap.String("task", j.name), zap.Duration("duration", time.Since(start)))
}

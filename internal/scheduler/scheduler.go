// Package scheduler runs periodic maintenance, currently the eviction of
// expired entries from in-process caches.
package scheduler

import (
	"fmt"

	"emploiplus/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper removes expired entries and reports how many were dropped.
type Sweeper interface {
	Sweep() int
}

type Scheduler struct {
	cron     *cron.Cron
	spec     string
	sweepers map[string]Sweeper
	logger   *zap.Logger
}

func New(spec string, sweepers map[string]Sweeper, l *zap.Logger) *Scheduler {
	l = logger.OrNop(l)
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cronLogger{l.Sugar()}), cron.WithChain(cron.Recover(cronLogger{l.Sugar()}))),
		spec:     spec,
		sweepers: sweepers,
		logger:   l,
	}
}

func (s *Scheduler) Start() error {
	if len(s.sweepers) == 0 {
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.Sweep); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.String("spec", s.spec), zap.Int("sweepers", len(s.sweepers)))
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) Sweep() {
	for name, sw := range s.sweepers {
		if sw == nil {
			continue
		}
		if n := sw.Sweep(); n > 0 {
			s.logger.Debug("Cache swept", zap.String("cache", name), zap.Int("evicted", n))
		}
	}
}

type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}

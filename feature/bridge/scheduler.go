package bridge

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrInvalidInterval is returned when the sweep interval is not positive.
var ErrInvalidInterval = errors.New("evaluation interval must be positive")

// Scheduler runs Processor.Sweep on a fixed interval.
type Scheduler struct {
	processor *Processor
	interval  time.Duration
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(processor *Processor, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{processor: processor, interval: interval, logger: logger}
}

// Start starts the sweep loop. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return ErrInvalidInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	s.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Limit evaluation scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// Stop stops the loop and waits for an in-flight sweep.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Limit evaluation scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			decisions, err := s.processor.Sweep(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Error("Limit sweep failed", zap.Error(err))
				}
				continue
			}
			s.logger.Debug("Limit sweep finished", zap.Int("decisions", len(decisions)))
		}
	}
}

// Package worker runs the periodic payout sweep.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

// Sweeper triggers payout sweeps on a fixed interval. At most one sweep runs
// per process; the optional lease extends that to every replica.
type Sweeper struct {
	payouts  port.PayoutUseCase
	lock     port.SweepLock
	interval time.Duration
	logger   *slog.Logger

	running sync.Mutex
}

// NewSweeper creates a sweeper. lock may be nil.
func NewSweeper(payouts port.PayoutUseCase, lock port.SweepLock, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		payouts:  payouts,
		lock:     lock,
		interval: interval,
		logger:   logger.With(slog.String("component", "sweeper")),
	}
}

// RunOnce runs a single sweep. It returns domain.ErrSweepInProgress when a
// sweep is already running here or on another replica.
func (s *Sweeper) RunOnce(ctx context.Context) (*port.SweepReport, error) {
	if !s.running.TryLock() {
		return nil, domain.ErrSweepInProgress
	}
	defer s.running.Unlock()

	if s.lock != nil {
		ok, err := s.lock.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSweepInProgress
		}
		defer func() {
			// The sweep context may already be cancelled on shutdown.
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := s.lock.Release(releaseCtx); err != nil {
				s.logger.Warn("release sweep lease", slog.Any("error", err))
			}
		}()
	}

	return s.payouts.Sweep(ctx)
}

// Run sweeps every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", slog.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
		}

		_, err := s.RunOnce(ctx)
		switch {
		case errors.Is(err, domain.ErrSweepInProgress):
			s.logger.Debug("sweep skipped", slog.Any("reason", err))
		case err != nil && ctx.Err() == nil:
			s.logger.Error("sweep failed", slog.Any("error", err))
		}
	}
}

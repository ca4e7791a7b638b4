package sim

import (
	"context"
	"errors"
	"time"

	"vncrypt-sim/internal/logging"
)

// Run drives the clock, one Step per tick interval, until ctx is done.
// Ticks that arrive while the run is not running are skipped.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulation clock", "mission", s.mission.Key, "tick_interval", s.tickInterval)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			log.Info("stopping simulation clock")
			return
		}
	}
}

func (s *Simulator) tick(ctx context.Context) {
	if err := s.Step(ctx); err != nil && !errors.Is(err, ErrInvalidState) {
		logging.FromContext(ctx).Error("tick failed", "err", err)
	}
}

// Wait blocks until the current run ends or ctx is done.
func (s *Simulator) Wait(ctx context.Context) (Result, error) {
	select {
	case <-s.Done():
		r, _ := s.Result()
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

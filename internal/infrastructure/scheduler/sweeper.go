// Package scheduler runs periodic housekeeping jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Expirer drops the current session once its TTL has passed.
type Expirer interface {
	ExpireIfDue(now time.Time) bool
}

// SessionSweeper clears expired sessions on a schedule, so an idle process
// does not keep a dead session around until the next request.
type SessionSweeper struct {
	cron     *cron.Cron
	store    Expirer
	onExpire func()
	now      func() time.Time
	log      zerolog.Logger
}

// NewSessionSweeper registers the sweep job. schedule accepts the standard
// cron syntax and descriptors such as "@every 30s". onExpire may be nil.
func NewSessionSweeper(schedule string, store Expirer, onExpire func(), log zerolog.Logger) (*SessionSweeper, error) {
	s := &SessionSweeper{
		cron:     cron.New(),
		store:    store,
		onExpire: onExpire,
		now:      time.Now,
		log:      log,
	}
	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, fmt.Errorf("session sweeper: invalid schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *SessionSweeper) Start() {
	s.cron.Start()
	s.log.Info().Msg("session sweeper started")
}

// Stop halts the schedule and waits for a running sweep, or for ctx.
func (s *SessionSweeper) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn().Msg("session sweeper did not stop in time")
	}
}

func (s *SessionSweeper) sweep() {
	if !s.store.ExpireIfDue(s.now()) {
		return
	}
	s.log.Info().Msg("session expired, state reset")
	if s.onExpire != nil {
		s.onExpire()
	}
}

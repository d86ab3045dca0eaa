package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const runTimeout = 30 * time.Second

// Scheduler runs the digest on a standard five-field cron schedule, e.g. "0 21 * * *".
type Scheduler struct {
	cron *cron.Cron
	svc  *Service
}

func NewScheduler(svc *Service, schedule string, loc *time.Location) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		svc:  svc,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("scheduling alert digest %q: %w", schedule, err)
	}

	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	_ = s.svc.Run(ctx)
}

// Next reports when the digest runs next. Zero until Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}

	return entries[0].Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("alert scheduler started", "next", s.Next())
}

// Stop waits for a running digest to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()

	select {
	case <-done.Done():
	case <-ctx.Done():
	}

	slog.Info("alert scheduler stopped")
}

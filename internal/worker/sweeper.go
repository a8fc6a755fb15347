package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/service"
)

// Sweeper re-runs the schedule audit on a fixed interval so the late /
// upcoming / pending-trigger gauges stay current between admin visits.
//
// Advisory only: the sweep never mutates items and never touches the
// deferred queue. Anything it finds is surfaced through logs and
// metrics for an operator to act on.
type Sweeper struct {
	svc      *service.AuditService
	interval time.Duration
	logger   *zap.Logger
}

func NewSweeper(svc *service.AuditService, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{svc: svc, interval: interval, logger: logger}
}

// Run ticks every interval and audits once per tick.
// Stops cleanly when ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("audit sweeper started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("audit sweeper stopping")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	report, err := s.svc.RunAudit(ctx)
	if err != nil {
		s.logger.Error("sweep audit error", zap.Error(err))
		return
	}

	if len(report.Late) == 0 {
		return
	}
	for _, item := range report.Late {
		s.logger.Warn("missed schedule",
			zap.String("item_id", item.ID),
			zap.String("title", item.Title),
			zap.Time("scheduled_at", item.ScheduledAt),
			zap.String("age", item.Age),
		)
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/audit"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/auth"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/repository"
)

// AuditReport is the composite read-only view served to the admin
// screen: late items (with action tokens), upcoming items, and the
// deferred-queue health summary. Recomputed on every request, never
// persisted.
type AuditReport struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Grace       time.Duration           `json:"grace_ns"`
	Late        []domain.ClassifiedItem `json:"late"`
	Upcoming    []domain.ClassifiedItem `json:"upcoming"`
	Cron        domain.CronHealth       `json:"cron"`
}

// AuditHooks carries the metric callbacks fired after each audit run.
// Nil hooks are replaced with no-ops so the service stays metrics-agnostic.
type AuditHooks struct {
	OnAudit func(late, upcoming, pendingTriggers int, elapsed time.Duration)
}

// AuditService composes the classifier and the cron inspector over
// fresh repository snapshots. Strictly read-only: the only mutation
// path in the system is TransitionService.
type AuditService struct {
	items    repository.ItemRepository
	cron     repository.CronRepository
	tokens   *auth.TokenAuthority
	clock    audit.Clock
	grace    time.Duration
	maxItems int
	hooks    AuditHooks
	logger   *zap.Logger
}

func NewAuditService(
	items repository.ItemRepository,
	cron repository.CronRepository,
	tokens *auth.TokenAuthority,
	clock audit.Clock,
	grace time.Duration,
	maxItems int,
	hooks AuditHooks,
	logger *zap.Logger,
) *AuditService {
	if clock == nil {
		clock = audit.SystemClock
	}
	if hooks.OnAudit == nil {
		hooks.OnAudit = func(int, int, int, time.Duration) {}
	}
	return &AuditService{
		items:    items,
		cron:     cron,
		tokens:   tokens,
		clock:    clock,
		grace:    grace,
		maxItems: maxItems,
		hooks:    hooks,
		logger:   logger,
	}
}

// RunAudit snapshots scheduled items and the cron queue, classifies,
// and attaches single-use action tokens to every late item so the
// caller can publish or bump it without a second round trip.
func (s *AuditService) RunAudit(ctx context.Context) (*AuditReport, error) {
	start := time.Now()
	now := s.clock()

	items, err := s.items.ListScheduled(ctx, s.maxItems)
	if err != nil {
		return nil, fmt.Errorf("snapshot scheduled items: %w", err)
	}

	events, err := s.cron.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot cron events: %w", err)
	}

	late, upcoming := audit.Classify(items, now, s.grace)
	health := audit.InspectCron(events)

	for i := range late {
		late[i].PublishToken = s.tokens.Issue(late[i].ID, domain.KindPublishNow)
		late[i].BumpToken = s.tokens.Issue(late[i].ID, domain.KindBump)
	}

	elapsed := time.Since(start)
	s.hooks.OnAudit(len(late), len(upcoming), health.PendingTriggers, elapsed)

	if len(late) > 0 {
		s.logger.Warn("audit found late scheduled items",
			zap.Int("late", len(late)),
			zap.Int("upcoming", len(upcoming)),
			zap.Int("pending_triggers", health.PendingTriggers),
		)
	}

	return &AuditReport{
		GeneratedAt: now,
		Grace:       s.grace,
		Late:        late,
		Upcoming:    upcoming,
		Cron:        health,
	}, nil
}

// CronHealth serves the queue summary alone, for the lightweight
// snapshot endpoint.
func (s *AuditService) CronHealth(ctx context.Context) (domain.CronHealth, error) {
	events, err := s.cron.ListEvents(ctx)
	if err != nil {
		return domain.CronHealth{}, fmt.Errorf("snapshot cron events: %w", err)
	}
	return audit.InspectCron(events), nil
}

// GetItem exposes single-item lookup for the admin drill-down view.
func (s *AuditService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	if id == "" {
		return nil, domain.ErrMissingItemID
	}
	return s.items.GetByID(ctx, id)
}

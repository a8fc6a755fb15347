package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/audit"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/auth"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/ratelimiter"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/repository"
)

// TransitionHooks carries the metric callback fired after each applied
// transition attempt.
type TransitionHooks struct {
	OnTransition func(kind domain.TransitionKind, result domain.TransitionResult)
}

// TransitionService is the single mutating path in the system. Each
// Apply call acts on exactly one item and performs at most one
// mutation, in this order: validate input, verify and consume the
// single-use token, look the item up, mutate conditionally.
//
// Races are expected, not exceptional: if the item vanished or was
// transitioned by another actor between audit and click, Apply returns
// ResultNoOp rather than an error. The conditional update in the
// repository is what makes the losing racer harmless.
type TransitionService struct {
	repo        repository.ItemRepository
	tokens      *auth.TokenAuthority
	limiter     *ratelimiter.KindLimiters
	clock       audit.Clock
	defaultBump time.Duration
	hooks       TransitionHooks
	logger      *zap.Logger
}

func NewTransitionService(
	repo repository.ItemRepository,
	tokens *auth.TokenAuthority,
	limiter *ratelimiter.KindLimiters,
	clock audit.Clock,
	defaultBump time.Duration,
	hooks TransitionHooks,
	logger *zap.Logger,
) *TransitionService {
	if clock == nil {
		clock = audit.SystemClock
	}
	if hooks.OnTransition == nil {
		hooks.OnTransition = func(domain.TransitionKind, domain.TransitionResult) {}
	}
	return &TransitionService{
		repo:        repo,
		tokens:      tokens,
		limiter:     limiter,
		clock:       clock,
		defaultBump: defaultBump,
		hooks:       hooks,
		logger:      logger,
	}
}

// Apply performs the requested transition and returns its result code.
//
// The error return is non-nil for caller faults (bad input, failed
// authorization) and for storage rejections; a lost race is NOT an
// error and comes back as (ResultNoOp, nil). The result and error
// always agree: ResultError implies err != nil, the other results
// imply err == nil.
func (s *TransitionService) Apply(ctx context.Context, req domain.TransitionRequest) (domain.TransitionResult, error) {
	if err := req.Validate(); err != nil {
		return domain.ResultError, err
	}

	if err := s.tokens.Verify(req.Token, req.ItemID, req.Kind); err != nil {
		s.logger.Warn("transition rejected: authorization failed",
			zap.String("item_id", req.ItemID),
			zap.String("kind", string(req.Kind)),
			zap.Error(err),
		)
		return domain.ResultError, err
	}

	item, err := s.repo.GetByID(ctx, req.ItemID)
	if errors.Is(err, domain.ErrNotFound) {
		s.finish(req.Kind, domain.ResultNoOp)
		return domain.ResultNoOp, nil
	}
	if err != nil {
		s.finish(req.Kind, domain.ResultError)
		return domain.ResultError, err
	}
	if item.Status != domain.StatusScheduled {
		// Already transitioned, most likely by a concurrent actor or
		// by the deferred queue finally firing. Nothing to do.
		s.finish(req.Kind, domain.ResultNoOp)
		return domain.ResultNoOp, nil
	}

	// Back-pressure on the mutation path so a stampede of admin
	// clicks cannot hammer the content store.
	if err := s.limiter.Wait(ctx, req.Kind); err != nil {
		s.finish(req.Kind, domain.ResultError)
		return domain.ResultError, err
	}

	switch req.Kind {
	case domain.KindPublishNow:
		return s.publishNow(ctx, item)
	default:
		return s.bump(ctx, item, req.BumpDuration)
	}
}

func (s *TransitionService) publishNow(ctx context.Context, item *domain.Item) (domain.TransitionResult, error) {
	now := s.clock()

	err := s.repo.PublishNow(ctx, item.ID, item.ScheduledAt, now)
	if errors.Is(err, domain.ErrConflict) {
		s.finish(domain.KindPublishNow, domain.ResultNoOp)
		return domain.ResultNoOp, nil
	}
	if err != nil {
		s.finish(domain.KindPublishNow, domain.ResultError)
		return domain.ResultError, err
	}

	s.logger.Info("item published",
		zap.String("item_id", item.ID),
		zap.Time("published_at", now),
	)
	s.finish(domain.KindPublishNow, domain.ResultPublished)
	return domain.ResultPublished, nil
}

func (s *TransitionService) bump(ctx context.Context, item *domain.Item, by time.Duration) (domain.TransitionResult, error) {
	// Lenient on purpose: a non-positive bump falls back to the
	// configured default instead of failing the request. Logged at
	// warn level so the oddity is visible when it happens.
	if by <= 0 {
		s.logger.Warn("non-positive bump duration normalized to default",
			zap.String("item_id", item.ID),
			zap.Duration("requested", by),
			zap.Duration("default", s.defaultBump),
		)
		by = s.defaultBump
	}

	newAt := item.ScheduledAt.Add(by)

	err := s.repo.Reschedule(ctx, item.ID, item.ScheduledAt, newAt)
	if errors.Is(err, domain.ErrConflict) {
		s.finish(domain.KindBump, domain.ResultNoOp)
		return domain.ResultNoOp, nil
	}
	if err != nil {
		s.finish(domain.KindBump, domain.ResultError)
		return domain.ResultError, err
	}

	s.logger.Info("item schedule bumped",
		zap.String("item_id", item.ID),
		zap.Time("scheduled_at", newAt),
		zap.Duration("by", by),
	)
	s.finish(domain.KindBump, domain.ResultBumped)
	return domain.ResultBumped, nil
}

func (s *TransitionService) finish(kind domain.TransitionKind, result domain.TransitionResult) {
	s.hooks.OnTransition(kind, result)
}

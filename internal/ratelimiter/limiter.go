package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

// KindLimiters holds one token bucket limiter per transition kind.
// Each limiter enforces a steady-state rate on the mutation path to the
// content store. Burst is set equal to the rate so no extra burst
// capacity is allowed beyond the configured per-second maximum.
type KindLimiters struct {
	limiters map[domain.TransitionKind]*rate.Limiter
}

// New creates a KindLimiters with ratePerSec tokens per second per kind.
func New(ratePerSec int) *KindLimiters {
	r := rate.Limit(ratePerSec)
	burst := ratePerSec // burst == rate: prevents any "saved up" burst above the limit

	return &KindLimiters{
		limiters: map[domain.TransitionKind]*rate.Limiter{
			domain.KindPublishNow: rate.NewLimiter(r, burst),
			domain.KindBump:       rate.NewLimiter(r, burst),
		},
	}
}

// Wait blocks until the kind's limiter grants a token.
// Called by the transition service immediately before mutating.
// Returns a non-nil error only if ctx is cancelled while waiting.
func (kl *KindLimiters) Wait(ctx context.Context, kind domain.TransitionKind) error {
	return kl.limiters[kind].Wait(ctx)
}

package audit

import (
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

// InspectCron reduces a raw deferred-queue snapshot to a health
// summary: how many publish-trigger invocations are pending, and when
// the earliest one is due. Entries for other hooks are ignored, as are
// entries with nothing pending.
//
// This is a total function: an empty or irrelevant snapshot yields a
// zero count and an absent next-trigger time.
func InspectCron(entries []domain.CronEvent) domain.CronHealth {
	var health domain.CronHealth

	for _, e := range entries {
		// Negative counts are malformed input; skip rather than let
		// them drag the sum down.
		if e.Hook != domain.PublishTriggerHook || e.PayloadCount < 0 {
			continue
		}

		health.PendingTriggers += e.PayloadCount

		if health.NextTriggerAt == nil || e.DueAt.Before(*health.NextTriggerAt) {
			due := e.DueAt
			health.NextTriggerAt = &due
		}
	}

	return health
}

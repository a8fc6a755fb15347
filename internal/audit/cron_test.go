package audit_test

import (
	"testing"
	"time"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/audit"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

func TestInspectCron_Empty(t *testing.T) {
	health := audit.InspectCron(nil)

	if health.PendingTriggers != 0 {
		t.Fatalf("expected 0 pending triggers, got %d", health.PendingTriggers)
	}
	if health.NextTriggerAt != nil {
		t.Fatalf("expected absent next trigger, got %v", health.NextTriggerAt)
	}
}

func TestInspectCron_FiltersToPublishTrigger(t *testing.T) {
	t1 := baseTime.Add(10 * time.Minute)
	t2 := baseTime.Add(20 * time.Minute)

	health := audit.InspectCron([]domain.CronEvent{
		{Hook: domain.PublishTriggerHook, DueAt: t1, PayloadCount: 2},
		{Hook: "cleanup", DueAt: t2, PayloadCount: 5},
	})

	if health.PendingTriggers != 2 {
		t.Fatalf("expected 2 pending triggers, got %d", health.PendingTriggers)
	}
	if health.NextTriggerAt == nil || !health.NextTriggerAt.Equal(t1) {
		t.Fatalf("expected next trigger at %v, got %v", t1, health.NextTriggerAt)
	}
}

func TestInspectCron_SumsAndFindsEarliest(t *testing.T) {
	early := baseTime.Add(5 * time.Minute)
	mid := baseTime.Add(15 * time.Minute)
	lateT := baseTime.Add(45 * time.Minute)

	health := audit.InspectCron([]domain.CronEvent{
		{Hook: domain.PublishTriggerHook, DueAt: mid, PayloadCount: 1},
		{Hook: domain.PublishTriggerHook, DueAt: early, PayloadCount: 3},
		{Hook: domain.PublishTriggerHook, DueAt: lateT, PayloadCount: 2},
	})

	if health.PendingTriggers != 6 {
		t.Fatalf("expected 6 pending triggers, got %d", health.PendingTriggers)
	}
	if health.NextTriggerAt == nil || !health.NextTriggerAt.Equal(early) {
		t.Fatalf("expected next trigger at %v, got %v", early, health.NextTriggerAt)
	}
}

func TestInspectCron_OnlyOtherHooks(t *testing.T) {
	health := audit.InspectCron([]domain.CronEvent{
		{Hook: "cleanup", DueAt: baseTime, PayloadCount: 4},
		{Hook: "digest", DueAt: baseTime, PayloadCount: 1},
	})

	if health.PendingTriggers != 0 || health.NextTriggerAt != nil {
		t.Fatalf("expected empty health, got %+v", health)
	}
}

func TestInspectCron_SkipsNegativeCounts(t *testing.T) {
	due := baseTime.Add(time.Minute)

	health := audit.InspectCron([]domain.CronEvent{
		{Hook: domain.PublishTriggerHook, DueAt: baseTime, PayloadCount: -3},
		{Hook: domain.PublishTriggerHook, DueAt: due, PayloadCount: 2},
	})

	if health.PendingTriggers != 2 {
		t.Fatalf("expected malformed entry skipped, got %d", health.PendingTriggers)
	}
	if health.NextTriggerAt == nil || !health.NextTriggerAt.Equal(due) {
		t.Fatalf("expected next trigger at %v, got %v", due, health.NextTriggerAt)
	}
}

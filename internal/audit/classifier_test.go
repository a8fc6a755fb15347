package audit_test

import (
	"testing"
	"time"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/audit"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

var baseTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func scheduled(id string, at time.Time) domain.Item {
	return domain.Item{
		ID:          id,
		Title:       "item " + id,
		ContentType: "post",
		Status:      domain.StatusScheduled,
		ScheduledAt: at,
	}
}

func ids(items []domain.ClassifiedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestClassify_Partition(t *testing.T) {
	grace := 5 * time.Minute
	items := []domain.Item{
		scheduled("a", baseTime.Add(-2*time.Hour)),   // well past grace
		scheduled("b", baseTime.Add(time.Hour)),      // future
		scheduled("c", baseTime.Add(-1*time.Minute)), // past, inside grace
	}

	late, upcoming := audit.Classify(items, baseTime, grace)

	if !equalIDs(ids(late), "a") {
		t.Fatalf("expected late=[a], got %v", ids(late))
	}
	if !equalIDs(ids(upcoming), "c", "b") {
		t.Fatalf("expected upcoming=[c b], got %v", ids(upcoming))
	}
	if len(late)+len(upcoming) != len(items) {
		t.Fatalf("partition is not exhaustive: %d + %d != %d", len(late), len(upcoming), len(items))
	}
}

func TestClassify_LatenessAndAge(t *testing.T) {
	items := []domain.Item{
		scheduled("late", baseTime.Add(-3*time.Hour)),
		scheduled("future", baseTime.Add(30*time.Minute)),
	}

	late, upcoming := audit.Classify(items, baseTime, 5*time.Minute)

	if late[0].Lateness != 3*time.Hour {
		t.Fatalf("expected lateness=3h, got %v", late[0].Lateness)
	}
	if late[0].Age != "3 hours late" {
		t.Fatalf("expected age %q, got %q", "3 hours late", late[0].Age)
	}
	if upcoming[0].Lateness != -30*time.Minute {
		t.Fatalf("expected negative lateness for future item, got %v", upcoming[0].Lateness)
	}
	if upcoming[0].Age != "in the future" {
		t.Fatalf("expected age %q, got %q", "in the future", upcoming[0].Age)
	}
}

// An item sitting exactly on the grace boundary is upcoming, not late.
// The late comparison is strictly greater-than.
func TestClassify_GraceBoundary(t *testing.T) {
	grace := 5 * time.Minute

	tests := []struct {
		name     string
		offset   time.Duration
		wantLate bool
	}{
		{"exactly at boundary", -grace, false},
		{"one second past boundary", -grace - time.Second, true},
		{"one second inside boundary", -grace + time.Second, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			late, upcoming := audit.Classify(
				[]domain.Item{scheduled("x", baseTime.Add(tc.offset))},
				baseTime, grace,
			)
			if tc.wantLate && (len(late) != 1 || len(upcoming) != 0) {
				t.Fatalf("expected late, got late=%d upcoming=%d", len(late), len(upcoming))
			}
			if !tc.wantLate && (len(late) != 0 || len(upcoming) != 1) {
				t.Fatalf("expected upcoming, got late=%d upcoming=%d", len(late), len(upcoming))
			}
		})
	}
}

func TestClassify_OrderedByScheduledTime(t *testing.T) {
	items := []domain.Item{
		scheduled("c", baseTime.Add(3*time.Hour)),
		scheduled("a", baseTime.Add(1*time.Hour)),
		scheduled("b", baseTime.Add(2*time.Hour)),
		scheduled("z", baseTime.Add(-2*time.Hour)),
		scheduled("y", baseTime.Add(-1*time.Hour)),
	}

	late, upcoming := audit.Classify(items, baseTime, 5*time.Minute)

	if !equalIDs(ids(late), "z", "y") {
		t.Fatalf("expected late=[z y], got %v", ids(late))
	}
	if !equalIDs(ids(upcoming), "a", "b", "c") {
		t.Fatalf("expected upcoming=[a b c], got %v", ids(upcoming))
	}
}

// Items sharing a scheduled time keep their input order.
func TestClassify_StableForEqualTimestamps(t *testing.T) {
	at := baseTime.Add(time.Hour)
	items := []domain.Item{
		scheduled("first", at),
		scheduled("second", at),
		scheduled("third", at),
	}

	_, upcoming := audit.Classify(items, baseTime, 5*time.Minute)

	if !equalIDs(ids(upcoming), "first", "second", "third") {
		t.Fatalf("stable order violated: %v", ids(upcoming))
	}
}

func TestClassify_SkipsNonScheduledItems(t *testing.T) {
	published := scheduled("p", baseTime.Add(-time.Hour))
	published.Status = domain.StatusPublished
	draft := scheduled("d", baseTime.Add(-time.Hour))
	draft.Status = domain.StatusDraft

	items := []domain.Item{published, draft, scheduled("s", baseTime.Add(-time.Hour))}

	late, upcoming := audit.Classify(items, baseTime, 5*time.Minute)

	if !equalIDs(ids(late), "s") {
		t.Fatalf("expected only the scheduled item, got %v", ids(late))
	}
	if len(upcoming) != 0 {
		t.Fatalf("expected no upcoming items, got %v", ids(upcoming))
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	late, upcoming := audit.Classify(nil, baseTime, 5*time.Minute)
	if len(late) != 0 || len(upcoming) != 0 {
		t.Fatalf("expected two empty slices, got late=%d upcoming=%d", len(late), len(upcoming))
	}
}

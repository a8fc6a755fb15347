package audit

import (
	"sort"
	"time"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

// Classify partitions scheduled items into late and upcoming.
//
// An item is late when its lateness (now - scheduled_at) exceeds the
// grace window strictly; an item sitting exactly on the boundary is
// upcoming. Both outputs are sorted ascending by scheduled time, and
// the sort is stable so items sharing a timestamp keep their input
// order.
//
// Callers are expected to pre-filter to status=scheduled (the
// repository query does); anything else that slips through is skipped
// rather than misclassified.
func Classify(items []domain.Item, now time.Time, grace time.Duration) (late, upcoming []domain.ClassifiedItem) {
	late = make([]domain.ClassifiedItem, 0, len(items))
	upcoming = make([]domain.ClassifiedItem, 0, len(items))

	for _, it := range items {
		if it.Status != domain.StatusScheduled {
			continue
		}

		lateness := now.Sub(it.ScheduledAt)
		ci := domain.ClassifiedItem{
			Item:     it,
			Lateness: lateness,
			Age:      domain.FormatLateness(lateness),
		}

		if lateness > grace {
			late = append(late, ci)
		} else {
			upcoming = append(upcoming, ci)
		}
	}

	sortByScheduledAt(late)
	sortByScheduledAt(upcoming)
	return late, upcoming
}

func sortByScheduledAt(items []domain.ClassifiedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ScheduledAt.Before(items[j].ScheduledAt)
	})
}

package repository

import (
	"context"
	"time"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

// ItemRepository is the auditor's view of the external content store.
// The pgx implementation is in pg_item_repo.go; tests use a
// hand-written mock (mock_item_repo.go).
//
// Both mutation methods are conditional updates keyed on the expected
// prior scheduled time (and status=scheduled): if another actor already
// transitioned the item, zero rows match and ErrConflict is returned.
// That optimistic check is the only concurrency control in the system.
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Item, error)

	// ListScheduled returns items with status=scheduled ordered
	// ascending by scheduled time, capped at limit. The cap keeps the
	// audit bounded on large installs.
	ListScheduled(ctx context.Context, limit int) ([]domain.Item, error)

	// PublishNow sets status=published and scheduled_at=publishAt,
	// provided the item is still scheduled for expectedAt.
	PublishNow(ctx context.Context, id string, expectedAt, publishAt time.Time) error

	// Reschedule moves scheduled_at to newAt, status unchanged,
	// provided the item is still scheduled for expectedAt.
	Reschedule(ctx context.Context, id string, expectedAt, newAt time.Time) error
}

// CronRepository reads the snapshot of the external deferred-execution
// queue. Read-only on purpose: the auditor reports on the queue, it
// never repairs it.
type CronRepository interface {
	ListEvents(ctx context.Context) ([]domain.CronEvent, error)
}

package domain

import (
	"fmt"
	"time"
)

// Status tracks the publication lifecycle of a content item.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusPublished, StatusDraft, StatusPending:
		return true
	}
	return false
}

// ContentType is the kind of content an item holds (post, page, ...).
// Stored as-is; the auditor treats it as an opaque tag.
type ContentType string

// Item is one content unit owned by the external content repository.
// The auditor never creates or deletes items; it only reads them and,
// through the transition service, requests status/time mutations.
type Item struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	ContentType ContentType `json:"content_type"`
	AuthorID    string      `json:"author_id"`
	Status      Status      `json:"status"`
	ScheduledAt time.Time   `json:"scheduled_at"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ClassifiedItem is an Item plus its lateness relative to the audit
// instant. Negative lateness means the item is still in the future.
// Derived per request, never persisted.
type ClassifiedItem struct {
	Item
	Lateness time.Duration `json:"lateness_ns"`

	// Age is the human-readable form of Lateness ("3 hours late",
	// "in the future") shown in the admin table.
	Age string `json:"age"`

	// Single-use action tokens, only populated for late items.
	PublishToken string `json:"publish_token,omitempty"`
	BumpToken    string `json:"bump_token,omitempty"`
}

// FormatLateness renders a duration the way the admin screen shows it.
// Coarse on purpose: days, then hours, then minutes.
func FormatLateness(d time.Duration) string {
	if d <= 0 {
		return "in the future"
	}

	minutes := int64(d / time.Minute)
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%d %s late", days, plural(days, "day"))
	case hours > 0:
		return fmt.Sprintf("%d %s late", hours, plural(hours, "hour"))
	case minutes > 0:
		return fmt.Sprintf("%d %s late", minutes, plural(minutes, "minute"))
	}
	return "seconds late"
}

func plural(n int64, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

package domain

import "time"

// PublishTriggerHook is the event tag within the deferred-execution
// queue that fires publication of a scheduled item. The inspector only
// looks at entries carrying this hook.
const PublishTriggerHook = "publish-trigger"

// CronEvent is one raw entry of the external deferred-execution
// schedule. PayloadCount is the number of pending invocations tagged
// with this hook at this due time.
type CronEvent struct {
	Hook         string    `json:"hook"`
	DueAt        time.Time `json:"due_at"`
	PayloadCount int       `json:"payload_count"`
}

// CronHealth summarizes the publish-trigger portion of the queue.
// Purely observational: it reports counts, it never asserts that the
// external scheduler is actually working.
type CronHealth struct {
	PendingTriggers int        `json:"pending_triggers"`
	NextTriggerAt   *time.Time `json:"next_trigger_at,omitempty"`
}

package audit

import "time"

// Clock supplies the current instant. Threaded explicitly into every
// classification and transition call so tests can pin time instead of
// racing against the wall clock.
type Clock func() time.Time

// SystemClock is the production clock. Always UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

package domain

import "time"

// TransitionKind selects the corrective action applied to one item.
type TransitionKind string

const (
	KindPublishNow TransitionKind = "publish_now"
	KindBump       TransitionKind = "bump"
)

func (k TransitionKind) IsValid() bool {
	switch k {
	case KindPublishNow, KindBump:
		return true
	}
	return false
}

// TransitionResult is the outcome code returned to the caller.
type TransitionResult string

const (
	// ResultPublished: the item was published immediately.
	ResultPublished TransitionResult = "published"
	// ResultBumped: the item's scheduled time was moved forward.
	ResultBumped TransitionResult = "bumped"
	// ResultNoOp: nothing to do — the item is missing or was already
	// transitioned by another actor. A benign race, not an error.
	ResultNoOp TransitionResult = "noop"
	// ResultError: the mutation was attempted and the storage layer
	// rejected it.
	ResultError TransitionResult = "error"
)

// TransitionRequest asks for exactly one corrective action on exactly
// one item. The token is single-use and scoped to (ItemID, Kind);
// the request is consumed by a single Apply call and never stored.
type TransitionRequest struct {
	ItemID       string         `json:"item_id"`
	Kind         TransitionKind `json:"kind"`
	BumpDuration time.Duration  `json:"bump_duration,omitempty"`
	Token        string         `json:"token"`
}

// Validate rejects malformed requests before any lookup or
// authorization work happens. A non-positive BumpDuration is NOT an
// input error: it is normalized to the configured default later.
func (r *TransitionRequest) Validate() error {
	if r.ItemID == "" {
		return ErrMissingItemID
	}
	if !r.Kind.IsValid() {
		return ErrInvalidKind
	}
	if r.Token == "" {
		return ErrMissingToken
	}
	return nil
}

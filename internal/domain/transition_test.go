package domain_test

import (
	"testing"
	"time"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

func TestTransitionRequest_Validate(t *testing.T) {
	valid := domain.TransitionRequest{
		ItemID: "item-1",
		Kind:   domain.KindPublishNow,
		Token:  "tok",
	}

	t.Run("valid request passes", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("missing item id", func(t *testing.T) {
		r := valid
		r.ItemID = ""
		if err := r.Validate(); err != domain.ErrMissingItemID {
			t.Fatalf("expected ErrMissingItemID, got %v", err)
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		r := valid
		r.Kind = "unpublish"
		if err := r.Validate(); err != domain.ErrInvalidKind {
			t.Fatalf("expected ErrInvalidKind, got %v", err)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		r := valid
		r.Token = ""
		if err := r.Validate(); err != domain.ErrMissingToken {
			t.Fatalf("expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("non-positive bump duration is not an input error", func(t *testing.T) {
		r := valid
		r.Kind = domain.KindBump
		r.BumpDuration = -10 * time.Minute
		if err := r.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

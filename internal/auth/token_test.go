package auth_test

import (
	"testing"
	"time"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/auth"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

var frozen = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestTokenAuthority_IssueAndVerify(t *testing.T) {
	a := auth.NewTokenAuthority("secret", 15*time.Minute, fixedClock(frozen))

	tok := a.Issue("item-1", domain.KindPublishNow)
	if err := a.Verify(tok, "item-1", domain.KindPublishNow); err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
}

func TestTokenAuthority_SingleUse(t *testing.T) {
	a := auth.NewTokenAuthority("secret", 15*time.Minute, fixedClock(frozen))

	tok := a.Issue("item-1", domain.KindPublishNow)
	if err := a.Verify(tok, "item-1", domain.KindPublishNow); err != nil {
		t.Fatalf("first use: %v", err)
	}
	if err := a.Verify(tok, "item-1", domain.KindPublishNow); err != domain.ErrTokenConsumed {
		t.Fatalf("expected ErrTokenConsumed on replay, got %v", err)
	}
}

func TestTokenAuthority_ScopedToItemAndKind(t *testing.T) {
	a := auth.NewTokenAuthority("secret", 15*time.Minute, fixedClock(frozen))

	tok := a.Issue("item-1", domain.KindPublishNow)

	t.Run("wrong item", func(t *testing.T) {
		if err := a.Verify(tok, "item-2", domain.KindPublishNow); err != domain.ErrTokenInvalid {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("wrong kind", func(t *testing.T) {
		if err := a.Verify(tok, "item-1", domain.KindBump); err != domain.ErrTokenInvalid {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})

	// A failed scope check must not consume the token.
	t.Run("still usable for its own scope", func(t *testing.T) {
		if err := a.Verify(tok, "item-1", domain.KindPublishNow); err != nil {
			t.Fatalf("expected token still valid, got %v", err)
		}
	})
}

func TestTokenAuthority_Expiry(t *testing.T) {
	now := frozen
	a := auth.NewTokenAuthority("secret", 10*time.Minute, func() time.Time { return now })

	tok := a.Issue("item-1", domain.KindBump)

	now = frozen.Add(11 * time.Minute)
	if err := a.Verify(tok, "item-1", domain.KindBump); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenAuthority_RejectsGarbageAndForgeries(t *testing.T) {
	a := auth.NewTokenAuthority("secret", 15*time.Minute, fixedClock(frozen))

	t.Run("not base64", func(t *testing.T) {
		if err := a.Verify("%%%", "item-1", domain.KindPublishNow); err != domain.ErrTokenInvalid {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("signed with a different secret", func(t *testing.T) {
		other := auth.NewTokenAuthority("other-secret", 15*time.Minute, fixedClock(frozen))
		tok := other.Issue("item-1", domain.KindPublishNow)
		if err := a.Verify(tok, "item-1", domain.KindPublishNow); err != domain.ErrTokenInvalid {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})
}

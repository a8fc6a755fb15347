package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/audit"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

// TokenAuthority issues and verifies single-use action tokens.
//
// A token authorizes exactly one (itemID, kind) pair, expires after the
// configured TTL, and is consumed on first successful verification:
// replaying a token fails with ErrTokenConsumed even inside the TTL.
//
// Format: base64url(nonce|itemID|kind|expiresUnix|hmac-sha256). The
// signature covers everything before it, keyed with the server secret,
// so tokens cannot be minted or re-scoped client-side. Single-use is
// enforced with an in-process consumed set keyed by nonce; entries are
// dropped once their expiry passes so the set stays bounded.
type TokenAuthority struct {
	secret []byte
	ttl    time.Duration
	clock  audit.Clock

	mu       sync.Mutex
	consumed map[string]time.Time // nonce -> expiry
}

const tokenFieldSep = "|"

func NewTokenAuthority(secret string, ttl time.Duration, clock audit.Clock) *TokenAuthority {
	if clock == nil {
		clock = audit.SystemClock
	}
	return &TokenAuthority{
		secret:   []byte(secret),
		ttl:      ttl,
		clock:    clock,
		consumed: make(map[string]time.Time),
	}
}

// Issue creates a fresh token scoped to the given item and kind.
func (a *TokenAuthority) Issue(itemID string, kind domain.TransitionKind) string {
	nonce := uuid.New().String()
	expires := a.clock().Add(a.ttl).Unix()

	payload := strings.Join([]string{
		nonce, itemID, string(kind), strconv.FormatInt(expires, 10),
	}, tokenFieldSep)

	sig := a.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(payload + tokenFieldSep + sig))
}

// Verify checks the token against the requested item and kind and, on
// success, consumes it. The order of checks means a forged token never
// reaches the consumed set.
func (a *TokenAuthority) Verify(token, itemID string, kind domain.TransitionKind) error {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return domain.ErrTokenInvalid
	}

	parts := strings.Split(string(raw), tokenFieldSep)
	if len(parts) != 5 {
		return domain.ErrTokenInvalid
	}
	nonce, tokenItem, tokenKind, expiresStr, sig := parts[0], parts[1], parts[2], parts[3], parts[4]

	payload := strings.Join(parts[:4], tokenFieldSep)
	if !hmac.Equal([]byte(sig), []byte(a.sign(payload))) {
		return domain.ErrTokenInvalid
	}

	if tokenItem != itemID || tokenKind != string(kind) {
		return domain.ErrTokenInvalid
	}

	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	now := a.clock()
	if now.Unix() > expires {
		return domain.ErrTokenExpired
	}

	return a.consume(nonce, time.Unix(expires, 0), now)
}

func (a *TokenAuthority) consume(nonce string, expiry, now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, used := a.consumed[nonce]; used {
		return domain.ErrTokenConsumed
	}

	// Opportunistic sweep of expired entries while the lock is held.
	for n, exp := range a.consumed {
		if now.After(exp) {
			delete(a.consumed, n)
		}
	}

	a.consumed[nonce] = expiry
	return nil
}

func (a *TokenAuthority) sign(payload string) string {
	mac := hmac.New(sha256.New, a.secret)
	fmt.Fprint(mac, payload)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

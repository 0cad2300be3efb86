// Package session holds the in-process session token registry. It is the
// only shared mutable state in the auth core; everything durable lives
// behind the store.
package session

import (
	"strings"
	"time"

	"github.com/northarcade/gameauth/internal/auth/domain"
	"github.com/northarcade/gameauth/pkg/cryptox"

	"sync"
)

// DefaultTTL is how long an issued session token stays valid.
const DefaultTTL = 24 * time.Hour

// Registry enforces "at most one active token per user". Expired entries are
// evicted lazily by whichever reader trips over them; there is no background
// sweep. Construct one per process and inject it into the services.
type Registry struct {
	mu     sync.Mutex
	tokens map[string]domain.SessionToken // token value -> record
	active map[int64]string               // user id -> their active token value

	ttl time.Duration
	now func() time.Time
}

// New returns a registry with the given token TTL. A zero or negative ttl
// falls back to DefaultTTL.
func New(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		tokens: make(map[string]domain.SessionToken),
		active: make(map[int64]string),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewAtClock is New with an injectable clock for tests.
func NewAtClock(ttl time.Duration, now func() time.Time) *Registry {
	r := New(ttl)
	if now != nil {
		r.now = now
	}
	return r
}

// Issue creates a new session token for the user. It fails with
// ALREADY_LOGGED_IN while the user still holds a live token; an expired
// active token is evicted on the spot and issuance proceeds.
func (r *Registry) Issue(userID int64) (domain.SessionToken, error) {
	if userID <= 0 {
		return domain.SessionToken{}, domain.NewFault(domain.FaultInvalidRequest, "user id must be positive")
	}

	value, err := cryptox.GenerateSessionToken()
	if err != nil {
		return domain.SessionToken{}, domain.WrapFault(domain.FaultConfigError,
			"could not create session", "session token generation", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if current, ok := r.active[userID]; ok {
		rec, live := r.tokens[current]
		if live && !rec.Expired(now) {
			return domain.SessionToken{}, domain.NewFault(domain.FaultAlreadyLoggedIn, "user is already logged in")
		}
		// Stale mapping, clean it up before issuing.
		delete(r.tokens, current)
		delete(r.active, userID)
	}

	tok := domain.SessionToken{
		Token:     value,
		UserID:    userID,
		ExpiresAt: now.Add(r.ttl),
	}
	r.tokens[value] = tok
	r.active[userID] = value
	return tok, nil
}

// UserID resolves a token to its owning user. Blank or whitespace-padded
// tokens are always unknown; tokens are never trimmed. An expired entry is
// removed atomically and reported not found.
func (r *Registry) UserID(token string) (int64, bool) {
	if token == "" || strings.TrimSpace(token) != token {
		return 0, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.tokens[token]
	if !ok {
		return 0, false
	}
	if rec.Expired(r.now()) {
		r.evictLocked(rec)
		return 0, false
	}
	return rec.UserID, true
}

// Remove deletes a token and returns the removed record. Unknown and blank
// tokens are a no-op.
func (r *Registry) Remove(token string) (domain.SessionToken, bool) {
	if strings.TrimSpace(token) == "" {
		return domain.SessionToken{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.tokens[token]
	if !ok {
		return domain.SessionToken{}, false
	}
	r.evictLocked(rec)
	return rec, true
}

// RevokeUser removes every token belonging to the user and reports how many
// were dropped. Administrative invalidation; returns 0 for non-positive ids.
func (r *Registry) RevokeUser(userID int64) int {
	if userID <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for value, rec := range r.tokens {
		if rec.UserID == userID {
			delete(r.tokens, value)
			removed++
		}
	}
	if current, ok := r.active[userID]; ok {
		if _, still := r.tokens[current]; !still {
			delete(r.active, userID)
		}
	}
	return removed
}

// Seed installs a token record directly. Test and administrative use only;
// it overwrites any active mapping for the record's user.
func (r *Registry) Seed(tok domain.SessionToken) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[tok.Token] = tok
	r.active[tok.UserID] = tok.Token
}

// Len reports the number of stored token records, counting stale entries
// that have not been evicted yet.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

func (r *Registry) evictLocked(rec domain.SessionToken) {
	delete(r.tokens, rec.Token)
	if r.active[rec.UserID] == rec.Token {
		delete(r.active, rec.UserID)
	}
}

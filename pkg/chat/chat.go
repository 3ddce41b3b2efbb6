// Package chat holds the disambiguation dialog state. The resolution
// engine is stateless; when a query is ambiguous the transport offers a
// numbered list of candidates and parks them here until the caller
// picks one or walks away.
package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/gigcompliance/anj-resolver/pkg/engine"
)

// State of one dialog session.
type State int

const (
	StateIdle State = iota
	StateAwaitingChoice
)

func (s State) String() string {
	if s == StateAwaitingChoice {
		return "awaiting_choice"
	}
	return "idle"
}

// Session tracks one caller's dialog. All mutation goes through the
// Store, which holds the lock.
type Session struct {
	ID      string
	Sport   string
	Lang    string
	state   State
	pending []engine.Match
	updated time.Time
}

// State returns the session's current state.
func (s *Session) State() State { return s.state }

// Pending returns the candidate list offered to the caller, nil when idle.
func (s *Session) Pending() []engine.Match { return s.pending }

// DefaultTTL is how long an unanswered choice stays alive.
const DefaultTTL = 15 * time.Minute

// Store is an in-memory session store keyed by session id.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a Store. ttl <= 0 means DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Session returns the live session for id, creating an idle one if
// needed. Expired sessions are replaced.
func (st *Store) Session(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.session(id)
}

func (st *Store) session(id string) *Session {
	s, ok := st.sessions[id]
	if ok && st.now().Sub(s.updated) <= st.ttl {
		return s
	}
	s = &Session{ID: id, state: StateIdle, updated: st.now()}
	st.sessions[id] = s
	return s
}

// Offer parks an ambiguous candidate list and moves the session to
// awaiting-choice. A single candidate or an empty list keeps the
// session idle; there is nothing to choose.
func (st *Store) Offer(id, sport, lang string, matches []engine.Match) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.session(id)
	s.Sport = sport
	s.Lang = lang
	s.updated = st.now()
	if len(matches) > 1 {
		s.state = StateAwaitingChoice
		s.pending = matches
	} else {
		s.state = StateIdle
		s.pending = nil
	}
	return s
}

// Choose resolves a pending choice by 1-based index and returns the
// selected match. Any outcome, including an error, returns the session
// to idle so a bad pick does not wedge the dialog.
func (st *Store) Choose(id string, n int) (engine.Match, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.session(id)
	pending := s.pending
	s.state = StateIdle
	s.pending = nil
	s.updated = st.now()

	if len(pending) == 0 {
		return engine.Match{}, fmt.Errorf("no pending choice for session %s", id)
	}
	if n < 1 || n > len(pending) {
		return engine.Match{}, fmt.Errorf("choice %d out of range 1..%d", n, len(pending))
	}
	return pending[n-1], nil
}

// Reject clears any pending choice ("none of these") and returns
// whether there was one.
func (st *Store) Reject(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.session(id)
	had := s.state == StateAwaitingChoice
	s.state = StateIdle
	s.pending = nil
	s.updated = st.now()
	return had
}

// Sweep drops sessions idle past the TTL and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	cutoff := st.now().Add(-st.ttl)
	for id, s := range st.sessions {
		if s.updated.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Package convstate tracks per-user slot-filling state between messages.
//
// When a handler needs one more piece of information (which college, which
// day) it records what it is waiting for. The user's next message is
// combined with the original query and routed back to the same handler.
// State is read-once and expires after a TTL so an abandoned follow-up
// never hijacks an unrelated later message.
package convstate

import (
	"context"
	"sync"
	"time"
)

// SlotKind names the missing piece a handler is waiting for.
type SlotKind string

const (
	SlotCollege SlotKind = "college"
	SlotDay     SlotKind = "day"
	SlotSection SlotKind = "section"
	SlotProgram SlotKind = "program"
)

// State is one pending follow-up for one user.
type State struct {
	// PendingIntent is the handler the follow-up belongs to.
	PendingIntent string

	// PendingSlot is what the handler asked for.
	PendingSlot SlotKind

	// OriginalQuery is the message that started the exchange. The
	// follow-up reply is appended to it before re-routing.
	OriginalQuery string

	// Partial carries values the handler already extracted.
	Partial map[string]string

	CreatedAt time.Time
}

// Metrics receives store lifecycle events.
type Metrics interface {
	RecordConversation(event string)
	SetConversationActive(n int)
}

// Store holds pending states keyed by user ID.
type Store struct {
	mu      sync.Mutex
	states  map[string]State
	ttl     time.Duration
	now     func() time.Time
	metrics Metrics
	cancel  context.CancelFunc
}

// DefaultTTL bounds how long a follow-up stays answerable.
const DefaultTTL = 10 * time.Minute

// NewStore creates a store. A zero ttl falls back to DefaultTTL.
// metrics may be nil.
func NewStore(ttl time.Duration, metrics Metrics) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		states:  make(map[string]State),
		ttl:     ttl,
		now:     time.Now,
		metrics: metrics,
	}
}

// StartCleanup launches a background sweep that drops expired states.
// Stop cancels it.
func (s *Store) StartCleanup(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

// Stop halts the cleanup goroutine.
func (s *Store) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Begin records a pending state for the user, replacing any earlier one.
func (s *Store) Begin(userID string, state State) {
	state.CreatedAt = s.now()
	s.mu.Lock()
	s.states[userID] = state
	n := len(s.states)
	s.mu.Unlock()
	s.recordEvent("begin", n)
}

// Peek returns the pending state without consuming it. Expired states are
// treated as absent.
func (s *Store) Peek(userID string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[userID]
	if !ok {
		return State{}, false
	}
	if s.expired(state) {
		delete(s.states, userID)
		return State{}, false
	}
	return state, true
}

// Consume returns and clears the pending state. A state is answered at
// most once.
func (s *Store) Consume(userID string) (State, bool) {
	s.mu.Lock()
	state, ok := s.states[userID]
	if ok {
		delete(s.states, userID)
	}
	n := len(s.states)
	s.mu.Unlock()
	if !ok {
		return State{}, false
	}
	if s.expired(state) {
		s.recordEvent("expired", n)
		return State{}, false
	}
	s.recordEvent("consume", n)
	return state, true
}

// Clear drops any pending state for the user.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	delete(s.states, userID)
	n := len(s.states)
	s.mu.Unlock()
	s.recordEvent("clear", n)
}

// Len reports how many users have pending state.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

func (s *Store) sweep() {
	s.mu.Lock()
	removed := 0
	for userID, state := range s.states {
		if s.expired(state) {
			delete(s.states, userID)
			removed++
		}
	}
	n := len(s.states)
	s.mu.Unlock()
	for i := 0; i < removed; i++ {
		s.recordEvent("expired", n)
	}
}

func (s *Store) expired(state State) bool {
	return s.now().Sub(state.CreatedAt) > s.ttl
}

func (s *Store) recordEvent(event string, active int) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordConversation(event)
	s.metrics.SetConversationActive(active)
}

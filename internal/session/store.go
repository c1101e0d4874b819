package session

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrNoSender is returned for a blank sender identity; there is nothing to
// key a conversation on.
var ErrNoSender = errors.New("sender identity is empty")

// Store keys conversation state by sender identity. Do serializes message
// handling per sender, so duplicate webhook deliveries for one customer
// cannot interleave mutations.
type Store interface {
	GetOrCreate(senderID string) (*Session, error)
	Do(senderID string, fn func(*Session) error) error
}

type entry struct {
	mu sync.Mutex
	s  *Session
}

// MemoryStore is the in-process Store. Sessions are created lazily and
// evicted after sitting idle longer than the TTL.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (st *MemoryStore) get(senderID string) (*entry, error) {
	if strings.TrimSpace(senderID) == "" {
		return nil, ErrNoSender
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.sessions[senderID]
	if !ok {
		e = &entry{s: New(senderID)}
		e.s.LastActivity = st.now()
		st.sessions[senderID] = e
	}
	return e, nil
}

func (st *MemoryStore) GetOrCreate(senderID string) (*Session, error) {
	e, err := st.get(senderID)
	if err != nil {
		return nil, err
	}
	return e.s, nil
}

// Do runs fn while holding the sender's session lock and stamps the
// session's last activity.
func (st *MemoryStore) Do(senderID string, fn func(*Session) error) error {
	e, err := st.get(senderID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.s.LastActivity = st.now()
	return fn(e.s)
}

// Len reports the number of live sessions.
func (st *MemoryStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep evicts sessions idle longer than the TTL and returns how many were
// removed. A TTL of zero disables eviction.
func (st *MemoryStore) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	cutoff := st.now().Add(-st.ttl)
	st.mu.Lock()
	defer st.mu.Unlock()
	evicted := 0
	for id, e := range st.sessions {
		if e.s.LastActivity.Before(cutoff) {
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Package state holds the process-wide application state: the active ledger
// session, the role it was authenticated as, and the profile fetched for that
// role.
//
// The store starts empty, is populated once by the session bootstrapper and is
// only ever cleared as a whole by Reset. Subscribers receive typed events when
// the session changes or a profile refetch is requested.
package state

import (
	"sync"
	"time"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
)

const subscriberBuffer = 16

// EventKind identifies a state transition.
type EventKind string

const (
	EventSessionEstablished EventKind = "session_established"
	EventRefetchRequested   EventKind = "refetch_requested"
	EventReset              EventKind = "reset"
)

// Event is delivered to subscribers after the state changed.
type Event struct {
	Kind       EventKind
	Role       domain.Role
	Generation uint64
}

// Snapshot is a consistent read of the store.
type Snapshot struct {
	Session    ports.Session
	Role       domain.Role
	Brand      *domain.Brand
	User       *domain.User
	Generation uint64
}

// Active reports whether the snapshot carries an unexpired session.
func (s Snapshot) Active(now time.Time) bool {
	return s.Session != nil && now.Before(s.Session.ExpiresAt())
}

// Store is the application-state container.
type Store struct {
	mu          sync.RWMutex
	session     ports.Session
	role        domain.Role
	brand       *domain.Brand
	user        *domain.User
	generation  uint64
	subscribers map[chan Event]struct{}

	bootstrapping bool

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		subscribers: make(map[chan Event]struct{}),
		now:         time.Now,
	}
}

// Snapshot returns the current state as-is, expired sessions included.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Session:    s.session,
		Role:       s.role,
		Brand:      s.brand,
		User:       s.user,
		Generation: s.generation,
	}
}

// Session returns the active session and its role, or domain.ErrNoSession when
// there is none or its TTL has passed.
func (s *Store) Session() (ports.Session, domain.Role, error) {
	snap := s.Snapshot()
	if !snap.Active(s.now()) {
		return nil, "", domain.ErrNoSession
	}
	return snap.Session, snap.Role, nil
}

// Establish stores a freshly authenticated session. It refuses to overwrite an
// existing one; callers must Reset first.
func (s *Store) Establish(sess ports.Session, role domain.Role) error {
	s.mu.Lock()
	if s.session != nil {
		s.mu.Unlock()
		return domain.ErrSessionActive
	}
	s.session = sess
	s.role = role
	s.brand = nil
	s.user = nil
	s.generation++
	ev := Event{Kind: EventSessionEstablished, Role: role, Generation: s.generation}
	s.mu.Unlock()

	s.publish(ev)
	return nil
}

// SetBrand stores the brand profile fetched for generation gen. The write is
// dropped when the store was reset since, or the session is not a brand one.
func (s *Store) SetBrand(gen uint64, b *domain.Brand) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen || s.session == nil || s.role != domain.RoleBrand {
		return false
	}
	s.brand = b
	return true
}

// SetUser is the consumer counterpart of SetBrand.
func (s *Store) SetUser(gen uint64, u *domain.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen || s.session == nil || s.role != domain.RoleUser {
		return false
	}
	s.user = u
	return true
}

// RequestRefetch asks subscribers to fetch the profile again.
func (s *Store) RequestRefetch() {
	s.mu.RLock()
	ev := Event{Kind: EventRefetchRequested, Role: s.role, Generation: s.generation}
	s.mu.RUnlock()
	s.publish(ev)
}

// Reset clears everything. It is the equivalent of a full page reload.
func (s *Store) Reset() {
	s.mu.Lock()
	ev := s.clearLocked()
	s.mu.Unlock()

	s.publish(ev)
}

// ExpireIfDue resets the store when the session TTL has passed at now. The
// check and the clear happen under one lock, so a session established in
// between is never swept.
func (s *Store) ExpireIfDue(now time.Time) bool {
	s.mu.Lock()
	if s.session == nil || now.Before(s.session.ExpiresAt()) {
		s.mu.Unlock()
		return false
	}
	ev := s.clearLocked()
	s.mu.Unlock()

	s.publish(ev)
	return true
}

func (s *Store) clearLocked() Event {
	s.session = nil
	s.role = ""
	s.brand = nil
	s.user = nil
	s.generation++
	return Event{Kind: EventReset, Generation: s.generation}
}

// TryBeginBootstrap claims the single bootstrap slot. It reports false when
// another bootstrap is still running. A successful claim must be paired with
// EndBootstrap.
func (s *Store) TryBeginBootstrap() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bootstrapping {
		return false
	}
	s.bootstrapping = true
	return true
}

// EndBootstrap releases the slot claimed by TryBeginBootstrap.
func (s *Store) EndBootstrap() {
	s.mu.Lock()
	s.bootstrapping = false
	s.mu.Unlock()
}

// Subscribe returns a channel of events and a function that stops delivery.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, ch)
			close(ch)
			s.mu.Unlock()
		})
	}
	return ch, unsubscribe
}

// publish never blocks; a subscriber with a full buffer misses the event.
func (s *Store) publish(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

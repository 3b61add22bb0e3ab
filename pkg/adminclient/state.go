package adminclient

import "sync"

// Status is the client auth lifecycle phase.
type Status string

const (
	StatusAnonymous     Status = "anonymous"
	StatusValidating    Status = "validating"
	StatusAuthenticated Status = "authenticated"
	StatusRejected      Status = "rejected"
)

// State is an immutable snapshot of the client auth store.
type State struct {
	Status     Status
	Identity   *Identity
	Credential string
	LastKind   ErrorKind
}

// Store holds the current auth state and fans out changes to
// subscribers. All mutation goes through the transition methods, which
// serialize writers; snapshots are safe to read from any goroutine.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

// NewStore starts anonymous.
func NewStore() *Store {
	return &Store{
		state: State{Status: StatusAnonymous},
		subs:  make(map[int]func(State)),
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers an observer and returns its cancel function.
// The observer is invoked with the current state immediately.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	current := s.state
	s.mu.Unlock()

	fn(current)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) set(state State) {
	s.mu.Lock()
	s.state = state
	observers := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	// Notify outside the lock so observers may call Snapshot.
	for _, fn := range observers {
		fn(state)
	}
}

func (s *Store) toValidating(credential string) {
	s.set(State{Status: StatusValidating, Credential: credential})
}

func (s *Store) toAuthenticated(identity Identity, credential string) {
	s.set(State{Status: StatusAuthenticated, Identity: &identity, Credential: credential})
}

func (s *Store) toRejected(kind ErrorKind) {
	s.set(State{Status: StatusRejected, LastKind: kind})
}

func (s *Store) toAnonymous() {
	s.set(State{Status: StatusAnonymous})
}

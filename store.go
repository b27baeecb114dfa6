package lookapp

import "sync"

// Store owns the conversation state tree. All mutation goes through
// Dispatch, which applies the pure reducer atomically; State returns a
// deep-copied snapshot, so callers can read without holding anything.
//
// Stores are created explicitly and passed to whatever consumes them; there
// is no package-level instance.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates a store holding the initial state.
func NewStore() *Store {
	return &Store{state: initialState()}
}

// Dispatch applies an action. It never fails: unrecognized actions and
// actions referencing missing groups leave the state unchanged.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, action)
}

// State returns a snapshot of the current state. Mutating the snapshot has
// no effect on the store.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// ActiveGroup returns a snapshot of the group currently accepting updates,
// or false when no query has been issued yet.
func (s *Store) ActiveGroup() (ConversationGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group := s.state.activeGroup()
	if group == nil {
		return ConversationGroup{}, false
	}
	return group.clone(), true
}

// Group returns a snapshot of the group with the given id, or false when no
// group matches.
func (s *Store) Group(id string) (ConversationGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group := s.state.group(id)
	if group == nil {
		return ConversationGroup{}, false
	}
	return group.clone(), true
}

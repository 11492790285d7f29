package dialog

import "sync"

// State is the per-user conversation cursor plus transient fields.
type State struct {
	Mode       Mode
	CategoryID uint
}

// Store is an in-memory arena of conversation state keyed by user id.
// State is created on first interaction and cleared after each completed
// or cancelled flow.
type Store struct {
	mu     sync.Mutex
	states map[int64]State
}

func NewStore() *Store {
	return &Store{states: make(map[int64]State)}
}

// Get returns the user's state; an absent entry reads as idle.
func (s *Store) Get(userID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[userID]
}

func (s *Store) Set(userID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = state
}

func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

package lookapp

import (
	"sync"
	"time"
)

// Session binds one conversation store to the assistant driving it.
type Session struct {
	// ID is the session key used over HTTP.
	ID string

	// Store holds the conversation state.
	Store *Store

	// Assistant orchestrates searches for this session.
	Assistant *Assistant

	// CreatedAt is when the session was first used.
	CreatedAt time.Time
}

// sessionRegistry is the in-process session table. Sessions live for the
// process lifetime unless removed.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	create   func(id string) *Session
}

func newSessionRegistry(create func(id string) *Session) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*Session),
		create:   create,
	}
}

// getOrCreate returns the session for id, creating it on first use. A fresh
// id is generated when id is empty.
func (r *sessionRegistry) getOrCreate(id string) *Session {
	if id == "" {
		id = NewSessionID()
	}

	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return session
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[id]; ok {
		return session
	}
	session = r.create(id)
	r.sessions[id] = session
	return session
}

// get returns the session for id, or false when none exists.
func (r *sessionRegistry) get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

// remove drops a session. Returns false when none existed.
func (r *sessionRegistry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// len returns the number of live sessions.
func (r *sessionRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

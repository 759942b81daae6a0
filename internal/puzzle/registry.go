package puzzle

import "sync"

// Registry holds the live session per child. It is owned by the server
// process and passed to the handlers that drive play, so session state
// never lives in package globals.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Get returns the child's live session, nil when none exists.
func (r *Registry) Get(childID string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[childID]
}

// Put replaces the child's live session.
func (r *Registry) Put(childID string, session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[childID] = session
}

// Remove discards the child's session, e.g. on disconnect or game end.
func (r *Registry) Remove(childID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, childID)
}

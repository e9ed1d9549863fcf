// Package views keeps the per-session view criteria of every list screen.
package views

import (
	"maps"
	"sync"

	"github.com/mamadbah2/stockroom/internal/query"
)

// SessionManager handles the query spec each session applies to each view.
type SessionManager struct {
	sessions map[string]map[string]query.Spec
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]map[string]query.Spec),
	}
}

// GetView returns the query spec of a session's view. Unknown sessions and views
// get the empty spec: no search, no filters, default sort.
func (sm *SessionManager) GetView(sessionID, view string) query.Spec {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if spec, exists := sm.sessions[sessionID][view]; exists {
		return clone(spec)
	}
	return query.Spec{}
}

// UpdateView replaces the query spec of a session's view.
func (sm *SessionManager) UpdateView(sessionID, view string, spec query.Spec) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	views, ok := sm.sessions[sessionID]
	if !ok {
		views = make(map[string]query.Spec)
		sm.sessions[sessionID] = views
	}
	views[view] = clone(spec)
}

// ClearView resets one view of a session.
func (sm *SessionManager) ClearView(sessionID, view string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions[sessionID], view)
	if len(sm.sessions[sessionID]) == 0 {
		delete(sm.sessions, sessionID)
	}
}

// ClearSession removes every view of a session.
func (sm *SessionManager) ClearSession(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, sessionID)
}

func clone(spec query.Spec) query.Spec {
	spec.Filters = maps.Clone(spec.Filters)
	return spec
}

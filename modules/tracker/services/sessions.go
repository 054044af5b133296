package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("services: selection session not found")

// SessionRegistry holds one SelectionController per mounted page. A session
// is created on mount and discarded on unmount; nothing survives a remount,
// matching the controller's lifecycle.
type SessionRegistry struct {
	factory func() *SelectionController

	mu       sync.RWMutex
	sessions map[string]*SelectionController
}

func NewSessionRegistry(factory func() *SelectionController) *SessionRegistry {
	return &SessionRegistry{
		factory:  factory,
		sessions: make(map[string]*SelectionController),
	}
}

// Create mounts a fresh controller and returns its session id.
func (r *SessionRegistry) Create() (string, *SelectionController) {
	controller := r.factory()
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = controller
	r.mu.Unlock()
	return id, controller
}

func (r *SessionRegistry) Get(id string) (*SelectionController, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	controller, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return controller, nil
}

// Close discards one session; in-flight fetches for it are orphaned and
// their completions hit a controller nothing reads anymore.
func (r *SessionRegistry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

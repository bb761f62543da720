package repository

import (
	"context"
	"encoding/json"
	"sync"

	"stressdost/internal/model"
)

// memorySessionRepo is the in-process fallback store used when no Mongo URI
// is configured. Sessions are copied through JSON on the way in and out so
// callers never share mutable state with the store.
type memorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemorySessionRepo returns an in-memory session repository.
func NewMemorySessionRepo() SessionRepo {
	return &memorySessionRepo{sessions: map[string][]byte{}}
}

func (r *memorySessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.put(session)
}

func (r *memorySessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	r.mu.RLock()
	data, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *memorySessionRepo) Update(ctx context.Context, session *model.Session) error {
	return r.put(session)
}

func (r *memorySessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

func (r *memorySessionRepo) put(session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.sessions[session.ID] = data
	r.mu.Unlock()
	return nil
}

package memory

import (
	"context"
	"sync"

	"loyalty-platform-backend/internal/features/auth/models"
	"loyalty-platform-backend/internal/features/auth/repository"
)

// Volatile session store for tests and the memory storage backend.
// TTL is not enforced; sessions live until deleted or the process exits.
type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewMemoryRepository() repository.SessionRepository {
	return &memoryRepository{
		sessions: make(map[string]*models.Session),
	}
}

func (r *memoryRepository) Save(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	r.sessions[session.Token] = &stored
	return nil
}

func (r *memoryRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	c := *session
	return &c, nil
}

func (r *memoryRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
	return nil
}

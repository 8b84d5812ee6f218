package memory

import (
	"context"
	"sync"
	"time"

	"loyalty-platform-backend/internal/features/user/models"
	"loyalty-platform-backend/internal/features/user/repository"
)

// memoryRepository is the volatile map-backed implementation of the user
// storage contract. Data is lost on restart; intended for tests and local dev.
type memoryRepository struct {
	mu     sync.RWMutex
	users  map[int]*models.User
	nextID int
}

func NewMemoryRepository() repository.UserRepository {
	return &memoryRepository{
		users:  make(map[int]*models.User),
		nextID: 1,
	}
}

func clone(u *models.User) *models.User {
	c := *u
	if u.TelegramID != nil {
		tg := *u.TelegramID
		c.TelegramID = &tg
	}
	return &c
}

func (r *memoryRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = clone(user)

	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return clone(user), nil
}

func (r *memoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return clone(user), nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memoryRepository) GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.TelegramID != nil && *user.TelegramID == telegramID {
			return clone(user), nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memoryRepository) GetByReferralCode(ctx context.Context, code string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ReferralCode == code {
			return clone(user), nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memoryRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.User, 0, len(r.users))
	for id := 1; id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			users = append(users, clone(user))
		}
	}
	return users, nil
}

func (r *memoryRepository) UpdatePoints(ctx context.Context, id int, points string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.Points = points
	return clone(user), nil
}

func (r *memoryRepository) UpdateTelegramID(ctx context.Context, id int, telegramID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.TelegramID = &telegramID
	return clone(user), nil
}

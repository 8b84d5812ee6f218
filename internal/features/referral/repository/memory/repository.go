package memory

import (
	"context"
	"sync"
	"time"

	"loyalty-platform-backend/internal/features/referral/models"
	"loyalty-platform-backend/internal/features/referral/repository"
)

type memoryRepository struct {
	mu        sync.RWMutex
	referrals map[int]*models.Referral
	nextID    int
}

func NewMemoryRepository() repository.ReferralRepository {
	return &memoryRepository{
		referrals: make(map[int]*models.Referral),
		nextID:    1,
	}
}

func (r *memoryRepository) Create(ctx context.Context, referral *models.Referral) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	referral.ID = r.nextID
	r.nextID++
	referral.CreatedAt = time.Now().UTC()

	stored := *referral
	r.referrals[referral.ID] = &stored

	return nil
}

func (r *memoryRepository) ListByReferrer(ctx context.Context, referrerID int) ([]*models.Referral, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Referral
	for id := 1; id < r.nextID; id++ {
		if ref, ok := r.referrals[id]; ok && ref.ReferrerID == referrerID {
			c := *ref
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memoryRepository) List(ctx context.Context) ([]*models.Referral, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Referral
	for id := 1; id < r.nextID; id++ {
		if ref, ok := r.referrals[id]; ok {
			c := *ref
			out = append(out, &c)
		}
	}
	return out, nil
}

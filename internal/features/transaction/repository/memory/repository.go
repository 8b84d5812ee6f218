package memory

import (
	"context"
	"sync"
	"time"

	"loyalty-platform-backend/internal/features/transaction/models"
	"loyalty-platform-backend/internal/features/transaction/repository"
)

type memoryRepository struct {
	mu     sync.RWMutex
	txs    map[int]*models.Transaction
	nextID int
}

func NewMemoryRepository() repository.TransactionRepository {
	return &memoryRepository{
		txs:    make(map[int]*models.Transaction),
		nextID: 1,
	}
}

func (r *memoryRepository) Create(ctx context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx.ID = r.nextID
	r.nextID++
	tx.CreatedAt = time.Now().UTC()

	stored := *tx
	r.txs[tx.ID] = &stored

	return nil
}

func (r *memoryRepository) ListByUser(ctx context.Context, userID int) ([]*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Transaction
	for id := 1; id < r.nextID; id++ {
		if tx, ok := r.txs[id]; ok && tx.UserID == userID {
			c := *tx
			out = append(out, &c)
		}
	}
	return out, nil
}

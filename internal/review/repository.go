package review

import (
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("review not found")

type Repository interface {
	ListByProduct(productID int) ([]Review, error)
	Get(productID, id int) (Review, error)
	Create(rev Review) (Review, error)
	Update(rev Review) (Review, error)
	Delete(productID, id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	reviews []Review
	nextID  int
}

func NewInMemoryRepository(seed []Review) *InMemoryRepository {
	repo := &InMemoryRepository{reviews: make([]Review, 0, len(seed))}
	maxID := 0
	for _, rev := range seed {
		repo.reviews = append(repo.reviews, rev)
		if rev.ID > maxID {
			maxID = rev.ID
		}
	}
	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) ListByProduct(productID int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Review, 0)
	for _, rev := range r.reviews {
		if rev.ProductID == productID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Get(productID, id int) (Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rev := range r.reviews {
		if rev.ProductID == productID && rev.ID == id {
			return rev, nil
		}
	}
	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) Create(rev Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev.ID = r.nextID
	r.nextID++
	if rev.Date == "" {
		rev.Date = time.Now().UTC().Format("2006-01-02")
	}
	r.reviews = append(r.reviews, rev)
	return rev, nil
}

func (r *InMemoryRepository) Update(rev Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.reviews {
		if existing.ProductID == rev.ProductID && existing.ID == rev.ID {
			rev.Date = existing.Date
			r.reviews[i] = rev
			return rev, nil
		}
	}
	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(productID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rev := range r.reviews {
		if rev.ProductID == productID && rev.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

package collection

import (
	"errors"
	"sync"
)

var (
	ErrNotFound    = errors.New("collection not found")
	ErrHasProducts = errors.New("Collection cannot be deleted because it includes one or more products.")
)

type Repository interface {
	List() ([]Collection, error)
	GetByID(id int) (Collection, error)
	Create(col Collection) (Collection, error)
	Update(col Collection) (Collection, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios. ProductsCount on
// seeded collections stands in for actual product rows.
type InMemoryRepository struct {
	mu          sync.RWMutex
	collections []Collection
	nextID      int
}

func NewInMemoryRepository(seed []Collection) *InMemoryRepository {
	repo := &InMemoryRepository{collections: make([]Collection, 0, len(seed))}
	maxID := 0
	for _, c := range seed {
		repo.collections = append(repo.collections, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) List() ([]Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Collection, len(r.collections))
	copy(out, r.collections)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.collections {
		if c.ID == id {
			return c, nil
		}
	}
	return Collection{}, ErrNotFound
}

func (r *InMemoryRepository) Create(col Collection) (Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	col.ID = r.nextID
	r.nextID++
	r.collections = append(r.collections, col)
	return col, nil
}

func (r *InMemoryRepository) Update(col Collection) (Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.collections {
		if c.ID == col.ID {
			col.ProductsCount = c.ProductsCount
			r.collections[i] = col
			return col, nil
		}
	}
	return Collection{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.collections {
		if c.ID == id {
			if c.ProductsCount > 0 {
				return ErrHasProducts
			}
			r.collections = append(r.collections[:i], r.collections[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

package image

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("image not found")

type Repository interface {
	ListByProduct(productID int) ([]ProductImage, error)
	Get(productID, id int) (ProductImage, error)
	Create(img ProductImage) (ProductImage, error)
	Delete(productID, id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	images []ProductImage
	nextID int
}

func NewInMemoryRepository(seed []ProductImage) *InMemoryRepository {
	repo := &InMemoryRepository{images: make([]ProductImage, 0, len(seed))}
	maxID := 0
	for _, img := range seed {
		repo.images = append(repo.images, img)
		if img.ID > maxID {
			maxID = img.ID
		}
	}
	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) ListByProduct(productID int) ([]ProductImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ProductImage, 0)
	for _, img := range r.images {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Get(productID, id int) (ProductImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, img := range r.images {
		if img.ProductID == productID && img.ID == id {
			return img, nil
		}
	}
	return ProductImage{}, ErrNotFound
}

func (r *InMemoryRepository) Create(img ProductImage) (ProductImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img.ID = r.nextID
	r.nextID++
	r.images = append(r.images, img)
	return img, nil
}

func (r *InMemoryRepository) Delete(productID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, img := range r.images {
		if img.ProductID == productID && img.ID == id {
			r.images = append(r.images[:i], r.images[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

package product

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrOrdered  = errors.New("Product cannot be deleted because it is associated with an order item.")
)

type Repository interface {
	List(q ListQuery) (ListResult, error)
	GetByID(id int) (Product, error)
	Exists(id int) (bool, error)
	Create(p Product) (Product, error)
	Update(p Product) (Product, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios. Ordered product
// ids stand in for order_item references.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products []Product
	ordered  map[int]bool
	nextID   int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	repo := &InMemoryRepository{
		products: make([]Product, 0, len(seed)),
		ordered:  make(map[int]bool),
	}
	maxID := 0
	for _, p := range seed {
		repo.products = append(repo.products, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	repo.nextID = maxID + 1
	return repo
}

// MarkOrdered records that an order item references the product.
func (r *InMemoryRepository) MarkOrdered(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ordered[id] = true
}

func (r *InMemoryRepository) List(q ListQuery) (ListResult, error) {
	q = q.normalized()
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		if q.CollectionID != 0 && p.CollectionID != q.CollectionID {
			continue
		}
		if q.PriceGT != 0 && p.UnitPrice <= q.PriceGT {
			continue
		}
		if q.PriceLT != 0 && p.UnitPrice >= q.PriceLT {
			continue
		}
		if q.Search != "" {
			needle := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(p.Title), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		matched = append(matched, p)
	}

	switch q.Ordering {
	case "unit_price":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].UnitPrice < matched[j].UnitPrice })
	case "-unit_price":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].UnitPrice > matched[j].UnitPrice })
	case "last_update":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].LastUpdate < matched[j].LastUpdate })
	case "-last_update":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].LastUpdate > matched[j].LastUpdate })
	}

	start := (q.Page - 1) * q.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return ListResult{Count: len(matched), Results: matched[start:end]}, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Exists(id int) (bool, error) {
	_, err := r.GetByID(id)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryRepository) Update(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.products {
		if existing.ID == p.ID {
			r.products[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			if r.ordered[id] {
				return ErrOrdered
			}
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

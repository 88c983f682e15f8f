package customer

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("customer not found")

type Repository interface {
	CreateForUser(userID int) (Customer, error)
	GetByID(id int) (Customer, error)
	GetByUserID(userID int) (Customer, error)
	List() ([]Customer, error)
	Update(cust Customer) (Customer, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu        sync.RWMutex
	customers []Customer
	nextID    int
}

func NewInMemoryRepository(seed []Customer) *InMemoryRepository {
	repo := &InMemoryRepository{customers: make([]Customer, 0, len(seed))}
	maxID := 0
	for _, c := range seed {
		repo.customers = append(repo.customers, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) CreateForUser(userID int) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.UserID == userID {
			return c, nil
		}
	}
	cust := Customer{ID: r.nextID, UserID: userID, Membership: MembershipBronze}
	r.nextID++
	r.customers = append(r.customers, cust)
	return cust, nil
}

func (r *InMemoryRepository) GetByID(id int) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) GetByUserID(userID int) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.UserID == userID {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) List() ([]Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Customer, len(r.customers))
	copy(out, r.customers)
	return out, nil
}

func (r *InMemoryRepository) Update(cust Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.customers {
		if c.ID == cust.ID {
			cust.UserID = c.UserID
			r.customers[i] = cust
			return cust, nil
		}
	}
	return Customer{}, ErrNotFound
}

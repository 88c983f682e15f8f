package order

import (
	"errors"
	"sync"
	"time"

	"storefront/internal/cart"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrCartNotFound = errors.New("No cart with the given ID was found.")
	ErrEmptyCart    = errors.New("The cart is empty.")
	ErrNoCustomer   = errors.New("no customer profile for user")
)

type Repository interface {
	// Place converts the cart into an order for the user's customer profile
	// and deletes the cart. Unit prices are captured at this moment.
	Place(userID int, cartID string) (Order, error)
	GetByID(id int) (Order, error)
	ListAll() ([]Order, error)
	ListByUser(userID int) ([]Order, error)
	ListByCustomer(customerID int) ([]Order, error)
	UpdatePaymentStatus(id int, status string) (Order, error)
	Delete(id int) error
}

// InMemoryRepository places orders against an in-memory cart store. The
// customers map links user ids to customer ids the way the real schema does.
type InMemoryRepository struct {
	mu        sync.RWMutex
	carts     *cart.InMemoryRepository
	customers map[int]int
	orders    []Order
	nextOrder int
	nextItem  int
}

func NewInMemoryRepository(carts *cart.InMemoryRepository, customers map[int]int) *InMemoryRepository {
	return &InMemoryRepository{
		carts:     carts,
		customers: customers,
		nextOrder: 1,
		nextItem:  1,
	}
}

func (r *InMemoryRepository) Place(userID int, cartID string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customerID, ok := r.customers[userID]
	if !ok {
		return Order{}, ErrNoCustomer
	}

	items, err := r.carts.ListItems(cartID)
	if err != nil {
		return Order{}, ErrCartNotFound
	}
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	ord := Order{
		ID:            r.nextOrder,
		CustomerID:    customerID,
		PlacedAt:      time.Now().UTC().Format(time.RFC3339),
		PaymentStatus: PaymentPending,
		Items:         make([]Item, 0, len(items)),
	}
	r.nextOrder++
	for _, it := range items {
		ord.Items = append(ord.Items, Item{
			ID:        r.nextItem,
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
			UnitPrice: it.Product.UnitPrice,
		})
		r.nextItem++
	}

	if err := r.carts.Delete(cartID); err != nil {
		return Order{}, err
	}
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customerID, ok := r.customers[userID]
	if !ok {
		return []Order{}, nil
	}
	return r.listByCustomerLocked(customerID), nil
}

func (r *InMemoryRepository) ListByCustomer(customerID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listByCustomerLocked(customerID), nil
}

func (r *InMemoryRepository) listByCustomerLocked(customerID int) []Order {
	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out
}

func (r *InMemoryRepository) UpdatePaymentStatus(id int, status string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			r.orders[i].PaymentStatus = status
			return r.orders[i], nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCartNotFound    = errors.New("No cart with the given ID was found.")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrProductNotFound = errors.New("No product with the given ID was found.")
)

type Repository interface {
	Create() (Cart, error)
	Get(cartID string) (Cart, error)
	Delete(cartID string) error
	ListItems(cartID string) ([]Item, error)
	GetItem(cartID string, itemID int) (Item, error)
	// AddItem upserts: an existing (cart, product) row has its quantity
	// incremented by the given amount.
	AddItem(cartID string, productID, quantity int) (Item, error)
	UpdateItemQuantity(cartID string, itemID, quantity int) (Item, error)
	DeleteItem(cartID string, itemID int) error
}

type inMemoryCart struct {
	createdAt string
	items     []Item
}

// InMemoryRepository backs carts with a seeded product table so tests can
// exercise the full flow without a database.
type InMemoryRepository struct {
	mu       sync.RWMutex
	carts    map[string]*inMemoryCart
	products map[int]ProductInfo
	nextItem int
}

func NewInMemoryRepository(products []ProductInfo) *InMemoryRepository {
	repo := &InMemoryRepository{
		carts:    make(map[string]*inMemoryCart),
		products: make(map[int]ProductInfo, len(products)),
		nextItem: 1,
	}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

// SetProductPrice changes a seeded product's price. Order placement snapshots
// the price current at that moment, which tests rely on.
func (r *InMemoryRepository) SetProductPrice(productID int, price float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return
	}
	p.UnitPrice = price
	r.products[productID] = p
}

func (r *InMemoryRepository) Product(productID int) (ProductInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[productID]
	return p, ok
}

func (r *InMemoryRepository) Create() (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.NewString()
	created := time.Now().UTC().Format(time.RFC3339)
	r.carts[id] = &inMemoryCart{createdAt: created}
	return Cart{ID: id, CreatedAt: created, Items: []Item{}}, nil
}

func (r *InMemoryRepository) Get(cartID string) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[cartID]
	if !ok {
		return Cart{}, ErrCartNotFound
	}
	return r.materialize(cartID, c), nil
}

func (r *InMemoryRepository) materialize(cartID string, c *inMemoryCart) Cart {
	out := Cart{ID: cartID, CreatedAt: c.createdAt, Items: make([]Item, 0, len(c.items))}
	for _, item := range c.items {
		p := r.products[item.Product.ID]
		item.Product = p
		item.TotalPrice = p.UnitPrice * float64(item.Quantity)
		out.Items = append(out.Items, item)
		out.TotalPrice += item.TotalPrice
	}
	return out
}

func (r *InMemoryRepository) Delete(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[cartID]; !ok {
		return ErrCartNotFound
	}
	delete(r.carts, cartID)
	return nil
}

func (r *InMemoryRepository) ListItems(cartID string) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return r.materialize(cartID, c).Items, nil
}

func (r *InMemoryRepository) GetItem(cartID string, itemID int) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[cartID]
	if !ok {
		return Item{}, ErrCartNotFound
	}
	for _, item := range c.items {
		if item.ID == itemID {
			p := r.products[item.Product.ID]
			item.Product = p
			item.TotalPrice = p.UnitPrice * float64(item.Quantity)
			return item, nil
		}
	}
	return Item{}, ErrItemNotFound
}

func (r *InMemoryRepository) AddItem(cartID string, productID, quantity int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[cartID]
	if !ok {
		return Item{}, ErrCartNotFound
	}
	p, ok := r.products[productID]
	if !ok {
		return Item{}, ErrProductNotFound
	}
	for i, item := range c.items {
		if item.Product.ID == productID {
			c.items[i].Quantity += quantity
			out := c.items[i]
			out.Product = p
			out.TotalPrice = p.UnitPrice * float64(out.Quantity)
			return out, nil
		}
	}
	item := Item{ID: r.nextItem, Product: p, Quantity: quantity, TotalPrice: p.UnitPrice * float64(quantity)}
	r.nextItem++
	c.items = append(c.items, Item{ID: item.ID, Product: ProductInfo{ID: productID}, Quantity: quantity})
	return item, nil
}

func (r *InMemoryRepository) UpdateItemQuantity(cartID string, itemID, quantity int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[cartID]
	if !ok {
		return Item{}, ErrCartNotFound
	}
	for i, item := range c.items {
		if item.ID == itemID {
			c.items[i].Quantity = quantity
			p := r.products[item.Product.ID]
			return Item{ID: itemID, Product: p, Quantity: quantity, TotalPrice: p.UnitPrice * float64(quantity)}, nil
		}
	}
	return Item{}, ErrItemNotFound
}

func (r *InMemoryRepository) DeleteItem(cartID string, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}
	for i, item := range c.items {
		if item.ID == itemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

package order

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cart"
	"storefront/internal/event"
	"storefront/internal/user"
)

type stubUsers struct{}

func (stubUsers) GetByID(id int) (user.User, error) {
	return user.User{ID: id, Email: "buyer@example.com"}, nil
}

func (stubUsers) HasPermission(int, string) bool { return false }

type fixture struct {
	carts    *cart.InMemoryRepository
	service  *Service
	received []event.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		carts: cart.NewInMemoryRepository([]cart.ProductInfo{
			{ID: 1, Title: "Bread", UnitPrice: 4},
			{ID: 2, Title: "Milk", UnitPrice: 2.5},
		}),
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	bus := event.NewDispatcher(log, event.SubscriberFunc(func(e event.Event) error {
		f.received = append(f.received, e)
		return nil
	}))
	repo := NewInMemoryRepository(f.carts, map[int]int{10: 3})
	f.service = NewService(repo, stubUsers{}, bus)
	return f
}

func (f *fixture) filledCart(t *testing.T) string {
	t.Helper()
	c, err := f.carts.Create()
	require.NoError(t, err)
	_, err = f.carts.AddItem(c.ID, 1, 2)
	require.NoError(t, err)
	_, err = f.carts.AddItem(c.ID, 2, 1)
	require.NoError(t, err)
	return c.ID
}

func TestPlaceConvertsCartItems(t *testing.T) {
	f := newFixture(t)
	cartID := f.filledCart(t)

	ord, err := f.service.Place(10, cartID)
	require.NoError(t, err)

	assert.Equal(t, 3, ord.CustomerID)
	assert.Equal(t, PaymentPending, ord.PaymentStatus)
	require.Len(t, ord.Items, 2)
	assert.Equal(t, 2, ord.Items[0].Quantity)
	assert.Equal(t, 4.0, ord.Items[0].UnitPrice)
	assert.Equal(t, 1, ord.Items[1].Quantity)
	assert.Equal(t, 2.5, ord.Items[1].UnitPrice)
}

func TestPlaceMergedCartItem(t *testing.T) {
	f := newFixture(t)
	c, err := f.carts.Create()
	require.NoError(t, err)
	_, err = f.carts.AddItem(c.ID, 1, 2)
	require.NoError(t, err)
	_, err = f.carts.AddItem(c.ID, 1, 2)
	require.NoError(t, err)

	ord, err := f.service.Place(10, c.ID)
	require.NoError(t, err)
	require.Len(t, ord.Items, 1)
	assert.Equal(t, 4, ord.Items[0].Quantity)

	_, err = f.carts.Get(c.ID)
	assert.Equal(t, cart.ErrCartNotFound, err)
}

func TestPlaceSnapshotsPriceAtPlacement(t *testing.T) {
	f := newFixture(t)
	cartID := f.filledCart(t)

	// the price changes between adding to cart and checking out
	f.carts.SetProductPrice(1, 9)

	ord, err := f.service.Place(10, cartID)
	require.NoError(t, err)
	assert.Equal(t, 9.0, ord.Items[0].UnitPrice)
}

func TestPlaceDeletesCart(t *testing.T) {
	f := newFixture(t)
	cartID := f.filledCart(t)

	_, err := f.service.Place(10, cartID)
	require.NoError(t, err)

	_, err = f.carts.Get(cartID)
	assert.Equal(t, cart.ErrCartNotFound, err)

	// a second placement of the same cart fails
	_, err = f.service.Place(10, cartID)
	assert.Equal(t, ErrCartNotFound, err)
}

func TestPlaceEmptyCart(t *testing.T) {
	f := newFixture(t)
	c, err := f.carts.Create()
	require.NoError(t, err)

	_, err = f.service.Place(10, c.ID)
	assert.Equal(t, ErrEmptyCart, err)
	assert.Empty(t, f.received)

	// the cart survives a failed placement
	_, err = f.carts.Get(c.ID)
	assert.NoError(t, err)
}

func TestPlaceUnknownCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Place(10, "b0e3f3f0-0000-0000-0000-000000000000")
	assert.Equal(t, ErrCartNotFound, err)
}

func TestPlaceDispatchesCreated(t *testing.T) {
	f := newFixture(t)
	cartID := f.filledCart(t)

	ord, err := f.service.Place(10, cartID)
	require.NoError(t, err)

	require.Len(t, f.received, 1)
	created, ok := f.received[0].(Created)
	require.True(t, ok, "expected a Created event, got %T", f.received[0])
	assert.Equal(t, ord.ID, created.Order.ID)
	assert.Equal(t, "buyer@example.com", created.CustomerEmail)
}

func TestUpdatePaymentStatusValidation(t *testing.T) {
	f := newFixture(t)
	cartID := f.filledCart(t)
	ord, err := f.service.Place(10, cartID)
	require.NoError(t, err)

	_, err = f.service.UpdatePaymentStatus(ord.ID, "X")
	assert.Equal(t, ErrInvalidStatus, err)

	updated, err := f.service.UpdatePaymentStatus(ord.ID, PaymentComplete)
	require.NoError(t, err)
	assert.Equal(t, PaymentComplete, updated.PaymentStatus)
}

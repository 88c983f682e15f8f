package order

import (
	"errors"

	"storefront/internal/event"
	"storefront/internal/user"
)

var ErrInvalidStatus = errors.New("payment status must be one of P, C, F")

type Service struct {
	repo   Repository
	users  user.ServiceInterface
	events event.Bus
}

func NewService(repo Repository, users user.ServiceInterface, events event.Bus) *Service {
	return &Service{repo: repo, users: users, events: events}
}

// Place converts a cart into an order and announces it. The event goes out
// only after the transaction has committed.
func (s *Service) Place(userID int, cartID string) (Order, error) {
	ord, err := s.repo.Place(userID, cartID)
	if err != nil {
		return Order{}, err
	}

	email := ""
	if u, err := s.users.GetByID(userID); err == nil {
		email = u.Email
	}
	s.events.Dispatch(Created{Order: ord, CustomerEmail: email})
	return ord, nil
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListAll()
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListByCustomer(customerID int) ([]Order, error) {
	return s.repo.ListByCustomer(customerID)
}

func (s *Service) UpdatePaymentStatus(id int, status string) (Order, error) {
	if !ValidPaymentStatus(status) {
		return Order{}, ErrInvalidStatus
	}
	return s.repo.UpdatePaymentStatus(id, status)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

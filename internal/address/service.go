package address

import (
	"errors"

	"storefront/internal/customer"
)

var (
	ErrStreetRequired = errors.New("street is required")
	ErrCityRequired   = errors.New("city is required")
)

// CustomerResolver maps an authenticated user to their customer profile.
type CustomerResolver interface {
	GetByUserID(userID int) (customer.Customer, error)
}

type Service struct {
	repo      Repository
	customers CustomerResolver
}

func NewService(repo Repository, customers CustomerResolver) *Service {
	return &Service{repo: repo, customers: customers}
}

func (s *Service) ListForUser(userID int) ([]Address, error) {
	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCustomer(cust.ID)
}

func (s *Service) GetForUser(userID, id int) (Address, error) {
	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		return Address{}, err
	}
	return s.repo.Get(cust.ID, id)
}

func (s *Service) CreateForUser(userID int, street, city string) (Address, error) {
	if err := validate(street, city); err != nil {
		return Address{}, err
	}
	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		return Address{}, err
	}
	return s.repo.Create(Address{CustomerID: cust.ID, Street: street, City: city})
}

func (s *Service) UpdateForUser(userID, id int, street, city string) (Address, error) {
	if err := validate(street, city); err != nil {
		return Address{}, err
	}
	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		return Address{}, err
	}
	return s.repo.Update(Address{ID: id, CustomerID: cust.ID, Street: street, City: city})
}

func (s *Service) DeleteForUser(userID, id int) error {
	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(cust.ID, id)
}

func validate(street, city string) error {
	if street == "" {
		return ErrStreetRequired
	}
	if city == "" {
		return ErrCityRequired
	}
	return nil
}

package customer

import "errors"

var ErrInvalidMembership = errors.New("membership must be one of B, S, G")

// Service orchestrates customer profile operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateForUser(userID int) (Customer, error) {
	return s.repo.CreateForUser(userID)
}

func (s *Service) GetByID(id int) (Customer, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByUserID(userID int) (Customer, error) {
	return s.repo.GetByUserID(userID)
}

func (s *Service) List() ([]Customer, error) {
	return s.repo.List()
}

func (s *Service) Update(cust Customer) (Customer, error) {
	if !validMembership(cust.Membership) {
		return Customer{}, ErrInvalidMembership
	}
	return s.repo.Update(cust)
}

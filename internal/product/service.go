package product

import "errors"

var (
	ErrTitleRequired    = errors.New("title must not be empty")
	ErrInvalidPrice     = errors.New("unit price must be at least 1")
	ErrInvalidInventory = errors.New("inventory must not be negative")
)

// ServiceInterface is the slice of this service other packages depend on.
type ServiceInterface interface {
	GetByID(id int) (Product, error)
	Exists(id int) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(q ListQuery) (ListResult, error) {
	return s.repo.List(q)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Exists(id int) (bool, error) {
	return s.repo.Exists(id)
}

func (s *Service) Create(p Product) (Product, error) {
	if err := validate(p); err != nil {
		return Product{}, err
	}
	return s.repo.Create(p)
}

func (s *Service) Update(p Product) (Product, error) {
	if err := validate(p); err != nil {
		return Product{}, err
	}
	return s.repo.Update(p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func validate(p Product) error {
	if p.Title == "" {
		return ErrTitleRequired
	}
	if p.UnitPrice < 1 {
		return ErrInvalidPrice
	}
	if p.Inventory < 0 {
		return ErrInvalidInventory
	}
	return nil
}

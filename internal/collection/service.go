package collection

import "errors"

var ErrTitleRequired = errors.New("title must not be empty")

// Service orchestrates collection operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Collection, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Collection, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(col Collection) (Collection, error) {
	if col.Title == "" {
		return Collection{}, ErrTitleRequired
	}
	return s.repo.Create(col)
}

func (s *Service) Update(col Collection) (Collection, error) {
	if col.Title == "" {
		return Collection{}, ErrTitleRequired
	}
	return s.repo.Update(col)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

package cart

import "errors"

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create() (Cart, error) {
	return s.repo.Create()
}

func (s *Service) Get(cartID string) (Cart, error) {
	return s.repo.Get(cartID)
}

func (s *Service) Delete(cartID string) error {
	return s.repo.Delete(cartID)
}

func (s *Service) ListItems(cartID string) ([]Item, error) {
	return s.repo.ListItems(cartID)
}

func (s *Service) GetItem(cartID string, itemID int) (Item, error) {
	return s.repo.GetItem(cartID, itemID)
}

func (s *Service) AddItem(cartID string, productID, quantity int) (Item, error) {
	if quantity < 1 {
		return Item{}, ErrInvalidQuantity
	}
	return s.repo.AddItem(cartID, productID, quantity)
}

func (s *Service) UpdateItemQuantity(cartID string, itemID, quantity int) (Item, error) {
	if quantity < 1 {
		return Item{}, ErrInvalidQuantity
	}
	return s.repo.UpdateItemQuantity(cartID, itemID, quantity)
}

func (s *Service) DeleteItem(cartID string, itemID int) error {
	return s.repo.DeleteItem(cartID, itemID)
}

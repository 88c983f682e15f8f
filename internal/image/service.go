package image

import (
	"errors"

	"storefront/internal/product"
)

var ErrNoSuchProduct = errors.New("No product with the given ID was found.")

type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) ListByProduct(productID int) ([]ProductImage, error) {
	if err := s.checkProduct(productID); err != nil {
		return nil, err
	}
	return s.repo.ListByProduct(productID)
}

func (s *Service) Get(productID, id int) (ProductImage, error) {
	return s.repo.Get(productID, id)
}

func (s *Service) Create(img ProductImage) (ProductImage, error) {
	if err := s.checkProduct(img.ProductID); err != nil {
		return ProductImage{}, err
	}
	return s.repo.Create(img)
}

func (s *Service) Delete(productID, id int) error {
	return s.repo.Delete(productID, id)
}

func (s *Service) checkProduct(productID int) error {
	ok, err := s.products.Exists(productID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSuchProduct
	}
	return nil
}

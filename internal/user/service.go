package user

import (
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/event"
)

// ServiceInterface is what other packages depend on when they need identity
// lookups or permission checks.
type ServiceInterface interface {
	GetByID(id int) (User, error)
	HasPermission(userID int, perm string) bool
}

type Service struct {
	repo Repository
	bus  event.Bus
}

func NewService(repo Repository, bus event.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// Register creates a new identity and fires Created so the customer profile
// gets materialized.
func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)

	created, err := s.repo.Create(u)
	if err != nil {
		return User{}, err
	}

	s.bus.Dispatch(Created{UserID: created.ID, Email: created.Email, FirstName: created.FirstName})
	return created, nil
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) HasPermission(userID int, perm string) bool {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return false
	}
	if u.Staff {
		return true
	}
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

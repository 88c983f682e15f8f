package customer

import (
	"storefront/internal/event"
	"storefront/internal/user"
)

const (
	MembershipBronze = "B"
	MembershipSilver = "S"
	MembershipGold   = "G"
)

type Customer struct {
	ID         int     `json:"id"`
	UserID     int     `json:"userId"`
	Phone      string  `json:"phone"`
	BirthDate  *string `json:"birthDate"`
	Membership string  `json:"membership"`
}

func validMembership(m string) bool {
	return m == MembershipBronze || m == MembershipSilver || m == MembershipGold
}

// NewUserSubscriber materializes a customer profile whenever an identity is
// created. Creation is idempotent, so replayed events cannot produce a
// second profile for the same identity.
func NewUserSubscriber(service *Service) event.Subscriber {
	return event.SubscriberFunc(func(e event.Event) error {
		created, ok := e.(user.Created)
		if !ok {
			return nil
		}
		_, err := service.CreateForUser(created.UserID)
		return err
	})
}

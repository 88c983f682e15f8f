package user

// PermViewHistory is the named capability required to view a customer's
// order history. It is grantable independently of the staff flag.
const PermViewHistory = "view_history"

type User struct {
	ID          int      `json:"id"`
	Email       string   `json:"email"`
	Password    string   `json:"password,omitempty"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Staff       bool     `json:"staff"`
	Permissions []string `json:"-"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// Created fires once when an identity is first persisted. A subscriber
// materializes the customer profile, so exactly one customer exists per
// identity.
type Created struct {
	UserID    int
	Email     string
	FirstName string
}

func (Created) Type() string { return "user.created" }

func sanitizeUser(u User) User {
	u.Password = ""
	return u
}

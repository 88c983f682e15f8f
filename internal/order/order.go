package order

// Payment status codes.
const (
	PaymentPending  = "P"
	PaymentComplete = "C"
	PaymentFailed   = "F"
)

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentComplete, PaymentFailed:
		return true
	}
	return false
}

type Item struct {
	ID        int     `json:"id"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Order struct {
	ID            int    `json:"id"`
	CustomerID    int    `json:"customerId"`
	PlacedAt      string `json:"placedAt"`
	PaymentStatus string `json:"paymentStatus"`
	Items         []Item `json:"items"`
}

// Created is dispatched after an order commits. CustomerEmail lets
// subscribers notify the buyer without another lookup.
type Created struct {
	Order         Order
	CustomerEmail string
}

func (Created) Type() string { return "order.created" }

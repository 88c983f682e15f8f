package address

// Address is a delivery address owned by a single customer.
type Address struct {
	ID         int    `json:"id"`
	CustomerID int    `json:"-"`
	Street     string `json:"street"`
	City       string `json:"city"`
}

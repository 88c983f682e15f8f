package cart

// ProductInfo is the slice of product data a cart response embeds.
type ProductInfo struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
}

type Item struct {
	ID         int         `json:"id"`
	Product    ProductInfo `json:"product"`
	Quantity   int         `json:"quantity"`
	TotalPrice float64     `json:"totalPrice"`
}

// Cart is an anonymous shopping cart. Knowing the uuid is the only
// credential needed to read or mutate it.
type Cart struct {
	ID         string  `json:"id"`
	CreatedAt  string  `json:"createdAt"`
	Items      []Item  `json:"items"`
	TotalPrice float64 `json:"totalPrice"`
}

package product

import "encoding/json"

// taxRate is applied on top of the stored unit price for display.
const taxRate = 1.1

// Product is a catalog entry. Images are the attached image references,
// loaded alongside the product.
type Product struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description"`
	UnitPrice    float64 `json:"unitPrice"`
	Inventory    int     `json:"inventory"`
	CollectionID int     `json:"collectionId"`
	LastUpdate   string  `json:"lastUpdate"`
	Images       []Image `json:"images"`
}

// MarshalJSON adds the derived priceWithTax field; it is never stored.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		PriceWithTax float64 `json:"priceWithTax"`
	}{plain(p), p.UnitPrice * taxRate})
}

type Image struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}

// ListQuery carries the supported catalog filters. Zero values mean "not
// set".
type ListQuery struct {
	CollectionID int
	PriceGT      float64
	PriceLT      float64
	Search       string
	Ordering     string
	Page         int
	PageSize     int
}

// ListResult is a paginated page of products plus the total match count.
type ListResult struct {
	Count   int       `json:"count"`
	Results []Product `json:"results"`
}

const defaultPageSize = 10

func (q ListQuery) normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	return q
}

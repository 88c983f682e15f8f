package collection

// Collection groups products. FeaturedProductID is optional and detaches
// (set-null) when the featured product is deleted.
type Collection struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	FeaturedProductID *int   `json:"featuredProductId"`
	ProductsCount     int    `json:"productsCount"`
}

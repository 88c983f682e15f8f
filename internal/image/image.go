package image

// ProductImage stores the reference to an uploaded image file; the upload
// mechanics themselves live outside this service.
type ProductImage struct {
	ID        int    `json:"id"`
	ProductID int    `json:"-"`
	Image     string `json:"image"`
}

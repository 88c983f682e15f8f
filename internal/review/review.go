package review

type Review struct {
	ID          int    `json:"id"`
	ProductID   int    `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

package image

import (
	"database/sql"

	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByProduct(productID int) ([]ProductImage, error) {
	rows, err := r.db.Query(`SELECT id, product_id, image FROM product_images WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, errors.Wrap(err, "list images")
	}
	defer rows.Close()

	out := make([]ProductImage, 0)
	for rows.Next() {
		var img ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Image); err != nil {
			return nil, errors.Wrap(err, "scan image")
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(productID, id int) (ProductImage, error) {
	var img ProductImage
	err := r.db.QueryRow(`SELECT id, product_id, image FROM product_images WHERE product_id = $1 AND id = $2`, productID, id).
		Scan(&img.ID, &img.ProductID, &img.Image)
	if err == sql.ErrNoRows {
		return ProductImage{}, ErrNotFound
	}
	if err != nil {
		return ProductImage{}, errors.Wrap(err, "get image")
	}
	return img, nil
}

func (r *PostgresRepository) Create(img ProductImage) (ProductImage, error) {
	err := r.db.QueryRow(`INSERT INTO product_images (product_id, image) VALUES ($1, $2) RETURNING id`,
		img.ProductID, img.Image).Scan(&img.ID)
	if err != nil {
		return ProductImage{}, errors.Wrap(err, "insert image")
	}
	return img, nil
}

func (r *PostgresRepository) Delete(productID, id int) error {
	res, err := r.db.Exec(`DELETE FROM product_images WHERE product_id = $1 AND id = $2`, productID, id)
	if err != nil {
		return errors.Wrap(err, "delete image")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

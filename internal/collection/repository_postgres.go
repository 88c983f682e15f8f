package collection

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

const listQuery = `
    SELECT c.id, c.title, c.featured_product_id, COUNT(p.id) AS products_count
    FROM collections c
    LEFT JOIN products p ON p.collection_id = c.id
    GROUP BY c.id
    ORDER BY c.title`

func (r *PostgresRepository) List() ([]Collection, error) {
	rows, err := r.db.Query(listQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list collections")
	}
	defer rows.Close()

	out := make([]Collection, 0)
	for rows.Next() {
		var c Collection
		if err := rows.Scan(&c.ID, &c.Title, &c.FeaturedProductID, &c.ProductsCount); err != nil {
			return nil, errors.Wrap(err, "scan collection")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Collection, error) {
	var c Collection
	err := r.db.QueryRow(`
        SELECT c.id, c.title, c.featured_product_id, COUNT(p.id) AS products_count
        FROM collections c
        LEFT JOIN products p ON p.collection_id = c.id
        WHERE c.id = $1
        GROUP BY c.id`, id).
		Scan(&c.ID, &c.Title, &c.FeaturedProductID, &c.ProductsCount)
	if err == sql.ErrNoRows {
		return Collection{}, ErrNotFound
	}
	if err != nil {
		return Collection{}, errors.Wrap(err, "get collection")
	}
	return c, nil
}

func (r *PostgresRepository) Create(col Collection) (Collection, error) {
	err := r.db.QueryRow(`INSERT INTO collections (title, featured_product_id) VALUES ($1, $2) RETURNING id`,
		col.Title, col.FeaturedProductID).Scan(&col.ID)
	if err != nil {
		return Collection{}, errors.Wrap(err, "insert collection")
	}
	return col, nil
}

func (r *PostgresRepository) Update(col Collection) (Collection, error) {
	res, err := r.db.Exec(`UPDATE collections SET title = $1, featured_product_id = $2 WHERE id = $3`,
		col.Title, col.FeaturedProductID, col.ID)
	if err != nil {
		return Collection{}, errors.Wrap(err, "update collection")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Collection{}, ErrNotFound
	}
	return r.GetByID(col.ID)
}

func (r *PostgresRepository) Delete(id int) error {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products WHERE collection_id = $1`, id).Scan(&count); err != nil {
		return errors.Wrap(err, "count products")
	}
	if count > 0 {
		return ErrHasProducts
	}

	res, err := r.db.Exec(`DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete collection")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

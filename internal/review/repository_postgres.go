package review

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

func (r *PostgresRepository) ListByProduct(productID int) ([]Review, error) {
	rows, err := r.db.Query(`SELECT id, product_id, name, description, date FROM reviews WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, errors.Wrap(err, "list reviews")
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.Name, &rev.Description, &rev.Date); err != nil {
			return nil, errors.Wrap(err, "scan review")
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(productID, id int) (Review, error) {
	var rev Review
	err := r.db.QueryRow(`SELECT id, product_id, name, description, date FROM reviews WHERE product_id = $1 AND id = $2`, productID, id).
		Scan(&rev.ID, &rev.ProductID, &rev.Name, &rev.Description, &rev.Date)
	if err == sql.ErrNoRows {
		return Review{}, ErrNotFound
	}
	if err != nil {
		return Review{}, errors.Wrap(err, "get review")
	}
	return rev, nil
}

func (r *PostgresRepository) Create(rev Review) (Review, error) {
	err := r.db.QueryRow(`INSERT INTO reviews (product_id, name, description) VALUES ($1, $2, $3) RETURNING id, date`,
		rev.ProductID, rev.Name, rev.Description).Scan(&rev.ID, &rev.Date)
	if err != nil {
		return Review{}, errors.Wrap(err, "insert review")
	}
	return rev, nil
}

func (r *PostgresRepository) Update(rev Review) (Review, error) {
	err := r.db.QueryRow(`UPDATE reviews SET name = $1, description = $2 WHERE product_id = $3 AND id = $4 RETURNING date`,
		rev.Name, rev.Description, rev.ProductID, rev.ID).Scan(&rev.Date)
	if err == sql.ErrNoRows {
		return Review{}, ErrNotFound
	}
	if err != nil {
		return Review{}, errors.Wrap(err, "update review")
	}
	return rev, nil
}

func (r *PostgresRepository) Delete(productID, id int) error {
	res, err := r.db.Exec(`DELETE FROM reviews WHERE product_id = $1 AND id = $2`, productID, id)
	if err != nil {
		return errors.Wrap(err, "delete review")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

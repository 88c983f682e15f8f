package address

import (
	"database/sql"

	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertAddressQuery = `
        INSERT INTO addresses (customer_id, street, city)
        VALUES ($1, $2, $3)
        RETURNING id, customer_id, street, city
    `
	updateAddressQuery = `
        UPDATE addresses
        SET street = $3, city = $4
        WHERE customer_id = $1 AND id = $2
        RETURNING id, customer_id, street, city
    `
	deleteAddressQuery = `
        DELETE FROM addresses WHERE customer_id = $1 AND id = $2
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByCustomer(customerID int) ([]Address, error) {
	rows, err := r.db.Query(`SELECT id, customer_id, street, city FROM addresses WHERE customer_id = $1 ORDER BY id`, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "list addresses")
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.Street, &a.City); err != nil {
			return nil, errors.Wrap(err, "scan address")
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(customerID, id int) (Address, error) {
	var a Address
	err := r.db.QueryRow(`SELECT id, customer_id, street, city FROM addresses WHERE customer_id = $1 AND id = $2`, customerID, id).
		Scan(&a.ID, &a.CustomerID, &a.Street, &a.City)
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, errors.Wrap(err, "get address")
	}
	return a, nil
}

func (r *PostgresRepository) Create(addr Address) (Address, error) {
	var a Address
	err := r.db.QueryRow(insertAddressQuery, addr.CustomerID, addr.Street, addr.City).
		Scan(&a.ID, &a.CustomerID, &a.Street, &a.City)
	if err != nil {
		return Address{}, errors.Wrap(err, "insert address")
	}
	return a, nil
}

func (r *PostgresRepository) Update(addr Address) (Address, error) {
	var a Address
	err := r.db.QueryRow(updateAddressQuery, addr.CustomerID, addr.ID, addr.Street, addr.City).
		Scan(&a.ID, &a.CustomerID, &a.Street, &a.City)
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, errors.Wrap(err, "update address")
	}
	return a, nil
}

func (r *PostgresRepository) Delete(customerID, id int) error {
	res, err := r.db.Exec(deleteAddressQuery, customerID, id)
	if err != nil {
		return errors.Wrap(err, "delete address")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

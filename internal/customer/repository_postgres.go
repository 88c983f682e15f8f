package customer

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

const customerColumns = `id, user_id, phone, birth_date, membership`

func (r *PostgresRepository) CreateForUser(userID int) (Customer, error) {
	// ON CONFLICT keeps creation idempotent under event replay.
	_, err := r.db.Exec(`INSERT INTO customers (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return Customer{}, errors.Wrap(err, "insert customer")
	}
	return r.GetByUserID(userID)
}

func (r *PostgresRepository) GetByID(id int) (Customer, error) {
	row := r.db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	return scanCustomer(row)
}

func (r *PostgresRepository) GetByUserID(userID int) (Customer, error) {
	row := r.db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE user_id = $1`, userID)
	return scanCustomer(row)
}

func (r *PostgresRepository) List() ([]Customer, error) {
	rows, err := r.db.Query(`SELECT ` + customerColumns + ` FROM customers ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	defer rows.Close()

	out := make([]Customer, 0)
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.UserID, &c.Phone, &c.BirthDate, &c.Membership); err != nil {
			return nil, errors.Wrap(err, "scan customer")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(cust Customer) (Customer, error) {
	err := r.db.QueryRow(`UPDATE customers SET phone = $1, birth_date = $2, membership = $3
        WHERE id = $4
        RETURNING `+customerColumns,
		cust.Phone, cust.BirthDate, cust.Membership, cust.ID).
		Scan(&cust.ID, &cust.UserID, &cust.Phone, &cust.BirthDate, &cust.Membership)
	if err == sql.ErrNoRows {
		return Customer{}, ErrNotFound
	}
	if err != nil {
		return Customer{}, errors.Wrap(err, "update customer")
	}
	return cust, nil
}

func scanCustomer(row *sql.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.UserID, &c.Phone, &c.BirthDate, &c.Membership)
	if err == sql.ErrNoRows {
		return Customer{}, ErrNotFound
	}
	if err != nil {
		return Customer{}, errors.Wrap(err, "scan customer")
	}
	return c, nil
}

package order

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const (
	lockCartQuery = `SELECT id FROM carts WHERE id = $1 FOR UPDATE`

	customerByUserQuery = `SELECT id FROM customers WHERE user_id = $1`

	insertOrderQuery = `
        INSERT INTO orders (customer_id)
        VALUES ($1)
        RETURNING id, customer_id, placed_at::text, payment_status
    `

	cartItemsForOrderQuery = `
        SELECT ci.product_id, ci.quantity, p.unit_price
        FROM cart_items ci
        JOIN products p ON p.id = ci.product_id
        WHERE ci.cart_id = $1
        ORDER BY ci.id
    `

	orderItemsQuery = `
        SELECT id, product_id, quantity, unit_price
        FROM order_items
        WHERE order_id = $1
        ORDER BY id
    `
)

// Place runs the whole conversion in one transaction. The cart row is locked
// first so two concurrent placements of the same cart cannot both commit.
func (r *PostgresRepository) Place(userID int, cartID string) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, errors.Wrap(err, "begin place order")
	}
	defer tx.Rollback()

	var lockedID string
	if err := tx.QueryRow(lockCartQuery, cartID).Scan(&lockedID); err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrCartNotFound
		}
		return Order{}, errors.Wrap(err, "lock cart")
	}

	var customerID int
	if err := tx.QueryRow(customerByUserQuery, userID).Scan(&customerID); err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNoCustomer
		}
		return Order{}, errors.Wrap(err, "resolve customer")
	}

	var ord Order
	if err := tx.QueryRow(insertOrderQuery, customerID).
		Scan(&ord.ID, &ord.CustomerID, &ord.PlacedAt, &ord.PaymentStatus); err != nil {
		return Order{}, errors.Wrap(err, "insert order")
	}

	rows, err := tx.Query(cartItemsForOrderQuery, cartID)
	if err != nil {
		return Order{}, errors.Wrap(err, "read cart items")
	}
	type line struct {
		productID int
		quantity  int
		unitPrice float64
	}
	lines := make([]line, 0)
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity, &l.unitPrice); err != nil {
			rows.Close()
			return Order{}, errors.Wrap(err, "scan cart item")
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Order{}, errors.Wrap(err, "read cart items")
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	// all order items go in as one multi-row insert
	var insert strings.Builder
	insert.WriteString(`INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES `)
	args := make([]any, 0, len(lines)*4)
	for i, l := range lines {
		if i > 0 {
			insert.WriteString(", ")
		}
		fmt.Fprintf(&insert, "($%d, $%d, $%d, $%d)", len(args)+1, len(args)+2, len(args)+3, len(args)+4)
		args = append(args, ord.ID, l.productID, l.quantity, l.unitPrice)
	}
	insert.WriteString(" RETURNING id")

	itemRows, err := tx.Query(insert.String(), args...)
	if err != nil {
		return Order{}, errors.Wrap(err, "insert order items")
	}
	ord.Items = make([]Item, 0, len(lines))
	for i := 0; i < len(lines) && itemRows.Next(); i++ {
		item := Item{ProductID: lines[i].productID, Quantity: lines[i].quantity, UnitPrice: lines[i].unitPrice}
		if err := itemRows.Scan(&item.ID); err != nil {
			itemRows.Close()
			return Order{}, errors.Wrap(err, "scan order item id")
		}
		ord.Items = append(ord.Items, item)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return Order{}, errors.Wrap(err, "insert order items")
	}
	if len(ord.Items) != len(lines) {
		return Order{}, errors.New("order item insert returned wrong row count")
	}

	if _, err := tx.Exec(`DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return Order{}, errors.Wrap(err, "delete cart")
	}

	if err := tx.Commit(); err != nil {
		return Order{}, errors.Wrap(err, "commit place order")
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	var ord Order
	err := r.db.QueryRow(`SELECT id, customer_id, placed_at::text, payment_status FROM orders WHERE id = $1`, id).
		Scan(&ord.ID, &ord.CustomerID, &ord.PlacedAt, &ord.PaymentStatus)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, errors.Wrap(err, "get order")
	}
	if ord.Items, err = r.items(ord.ID); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	return r.list(`SELECT id, customer_id, placed_at::text, payment_status FROM orders ORDER BY id`)
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.list(`
        SELECT o.id, o.customer_id, o.placed_at::text, o.payment_status
        FROM orders o
        JOIN customers c ON c.id = o.customer_id
        WHERE c.user_id = $1
        ORDER BY o.id`, userID)
}

func (r *PostgresRepository) ListByCustomer(customerID int) ([]Order, error) {
	return r.list(`SELECT id, customer_id, placed_at::text, payment_status FROM orders WHERE customer_id = $1 ORDER BY id`, customerID)
}

func (r *PostgresRepository) list(query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		var ord Order
		if err := rows.Scan(&ord.ID, &ord.CustomerID, &ord.PlacedAt, &ord.PaymentStatus); err != nil {
			return nil, errors.Wrap(err, "scan order")
		}
		out = append(out, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	for i := range out {
		if out[i].Items, err = r.items(out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PostgresRepository) items(orderID int) ([]Item, error) {
	rows, err := r.db.Query(orderItemsQuery, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "list order items")
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, errors.Wrap(err, "scan order item")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) UpdatePaymentStatus(id int, status string) (Order, error) {
	res, err := r.db.Exec(`UPDATE orders SET payment_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return Order{}, errors.Wrap(err, "update payment status")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin delete order")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return errors.Wrap(err, "delete order items")
	}
	res, err := tx.Exec(`DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete order")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return errors.Wrap(tx.Commit(), "commit delete order")
}

package cart

import (
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const (
	itemColumns = `
        SELECT ci.id, ci.quantity, p.id, p.title, p.unit_price
        FROM cart_items ci
        JOIN products p ON p.id = ci.product_id
    `
	upsertItemQuery = `
        INSERT INTO cart_items (cart_id, product_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (cart_id, product_id)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
        RETURNING id, quantity
    `
)

func (r *PostgresRepository) Create() (Cart, error) {
	id := uuid.NewString()
	var created string
	err := r.db.QueryRow(`INSERT INTO carts (id) VALUES ($1) RETURNING created_at::text`, id).Scan(&created)
	if err != nil {
		return Cart{}, errors.Wrap(err, "insert cart")
	}
	return Cart{ID: id, CreatedAt: created, Items: []Item{}}, nil
}

func (r *PostgresRepository) Get(cartID string) (Cart, error) {
	var cart Cart
	err := r.db.QueryRow(`SELECT id, created_at::text FROM carts WHERE id = $1`, cartID).
		Scan(&cart.ID, &cart.CreatedAt)
	if err == sql.ErrNoRows {
		return Cart{}, ErrCartNotFound
	}
	if err != nil {
		return Cart{}, errors.Wrap(err, "get cart")
	}

	items, err := r.ListItems(cartID)
	if err != nil {
		return Cart{}, err
	}
	cart.Items = items
	for _, item := range items {
		cart.TotalPrice += item.TotalPrice
	}
	return cart, nil
}

func (r *PostgresRepository) Delete(cartID string) error {
	res, err := r.db.Exec(`DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return errors.Wrap(err, "delete cart")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (r *PostgresRepository) ListItems(cartID string) ([]Item, error) {
	rows, err := r.db.Query(itemColumns+` WHERE ci.cart_id = $1 ORDER BY ci.id`, cartID)
	if err != nil {
		return nil, errors.Wrap(err, "list cart items")
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetItem(cartID string, itemID int) (Item, error) {
	row := r.db.QueryRow(itemColumns+` WHERE ci.cart_id = $1 AND ci.id = $2`, cartID, itemID)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return Item{}, ErrItemNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepository) AddItem(cartID string, productID, quantity int) (Item, error) {
	var exists bool
	if err := r.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)`, cartID).Scan(&exists); err != nil {
		return Item{}, errors.Wrap(err, "check cart")
	}
	if !exists {
		return Item{}, ErrCartNotFound
	}

	var info ProductInfo
	err := r.db.QueryRow(`SELECT id, title, unit_price FROM products WHERE id = $1`, productID).
		Scan(&info.ID, &info.Title, &info.UnitPrice)
	if err == sql.ErrNoRows {
		return Item{}, ErrProductNotFound
	}
	if err != nil {
		return Item{}, errors.Wrap(err, "check product")
	}

	var item Item
	if err := r.db.QueryRow(upsertItemQuery, cartID, productID, quantity).Scan(&item.ID, &item.Quantity); err != nil {
		// the product or cart can disappear between the checks above and the
		// upsert; surface the FK violation as the same not-found errors
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == "23503" {
			if strings.Contains(pgErr.ConstraintName, "cart_id") {
				return Item{}, ErrCartNotFound
			}
			return Item{}, ErrProductNotFound
		}
		return Item{}, errors.Wrap(err, "upsert cart item")
	}
	item.Product = info
	item.TotalPrice = info.UnitPrice * float64(item.Quantity)
	return item, nil
}

func (r *PostgresRepository) UpdateItemQuantity(cartID string, itemID, quantity int) (Item, error) {
	res, err := r.db.Exec(`UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND id = $2`, cartID, itemID, quantity)
	if err != nil {
		return Item{}, errors.Wrap(err, "update cart item")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return Item{}, ErrItemNotFound
	}
	return r.GetItem(cartID, itemID)
}

func (r *PostgresRepository) DeleteItem(cartID string, itemID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	if err != nil {
		return errors.Wrap(err, "delete cart item")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var item Item
	if err := row.Scan(&item.ID, &item.Quantity, &item.Product.ID, &item.Product.Title, &item.Product.UnitPrice); err != nil {
		return Item{}, err
	}
	item.TotalPrice = item.Product.UnitPrice * float64(item.Quantity)
	return item, nil
}

package product

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, title, slug, description, unit_price, inventory, collection_id, last_update`

var orderings = map[string]string{
	"unit_price":   "unit_price ASC",
	"-unit_price":  "unit_price DESC",
	"last_update":  "last_update ASC",
	"-last_update": "last_update DESC",
}

func (r *PostgresRepository) List(q ListQuery) (ListResult, error) {
	q = q.normalized()

	where := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.CollectionID != 0 {
		where = append(where, "collection_id = "+arg(q.CollectionID))
	}
	if q.PriceGT != 0 {
		where = append(where, "unit_price > "+arg(q.PriceGT))
	}
	if q.PriceLT != 0 {
		where = append(where, "unit_price < "+arg(q.PriceLT))
	}
	if q.Search != "" {
		p := arg("%" + q.Search + "%")
		where = append(where, "(title ILIKE "+p+" OR description ILIKE "+p+")")
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`+clause, args...).Scan(&count); err != nil {
		return ListResult{}, errors.Wrap(err, "count products")
	}

	orderBy := "title ASC"
	if ob, ok := orderings[q.Ordering]; ok {
		orderBy = ob
	}

	query := `SELECT ` + productColumns + ` FROM products` + clause +
		` ORDER BY ` + orderBy +
		` LIMIT ` + arg(q.PageSize) + ` OFFSET ` + arg((q.Page-1)*q.PageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return ListResult{}, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	results := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.UnitPrice, &p.Inventory, &p.CollectionID, &p.LastUpdate); err != nil {
			return ListResult{}, errors.Wrap(err, "scan product")
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return ListResult{}, err
	}

	if err := r.attachImages(results); err != nil {
		return ListResult{}, err
	}
	return ListResult{Count: count, Results: results}, nil
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	var p Product
	err := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.UnitPrice, &p.Inventory, &p.CollectionID, &p.LastUpdate)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, errors.Wrap(err, "get product")
	}

	page := []Product{p}
	if err := r.attachImages(page); err != nil {
		return Product{}, err
	}
	return page[0], nil
}

func (r *PostgresRepository) Exists(id int) (bool, error) {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM products WHERE id = $1`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "product exists")
	}
	return true, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(`INSERT INTO products (title, slug, description, unit_price, inventory, collection_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, last_update`,
		p.Title, p.Slug, p.Description, p.UnitPrice, p.Inventory, p.CollectionID).
		Scan(&p.ID, &p.LastUpdate)
	if err != nil {
		return Product{}, errors.Wrap(err, "insert product")
	}
	return p, nil
}

func (r *PostgresRepository) Update(p Product) (Product, error) {
	err := r.db.QueryRow(`UPDATE products
        SET title = $1, slug = $2, description = $3, unit_price = $4, inventory = $5, collection_id = $6, last_update = now()
        WHERE id = $7
        RETURNING last_update`,
		p.Title, p.Slug, p.Description, p.UnitPrice, p.Inventory, p.CollectionID, p.ID).
		Scan(&p.LastUpdate)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, errors.Wrap(err, "update product")
	}
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM order_items WHERE product_id = $1`, id).Scan(&count); err != nil {
		return errors.Wrap(err, "count order items")
	}
	if count > 0 {
		return ErrOrdered
	}

	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) attachImages(products []Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int, 0, len(products))
	index := make(map[int]int, len(products))
	for i := range products {
		products[i].Images = []Image{}
		ids = append(ids, products[i].ID)
		index[products[i].ID] = i
	}

	rows, err := r.db.Query(`SELECT id, product_id, image FROM product_images WHERE product_id = ANY($1::int[]) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return errors.Wrap(err, "list product images")
	}
	defer rows.Close()

	for rows.Next() {
		var img Image
		var productID int
		if err := rows.Scan(&img.ID, &productID, &img.Image); err != nil {
			return errors.Wrap(err, "scan product image")
		}
		if i, ok := index[productID]; ok {
			products[i].Images = append(products[i].Images, img)
		}
	}
	return rows.Err()
}

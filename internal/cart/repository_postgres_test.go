package cart

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

const testCartID = "2f5a1f57-7a4a-4d4f-9c63-0f7d8f2a9b11"

func expectAddItemChecks(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM carts WHERE id = \$1\)`).
		WithArgs(testCartID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT id, title, unit_price FROM products WHERE id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "unit_price"}).AddRow(5, "Bread", 4.0))
}

func TestAddItemUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	expectAddItemChecks(mock)
	mock.ExpectQuery(`INSERT INTO cart_items`).
		WithArgs(testCartID, 5, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}).AddRow(11, 4))

	item, err := repo.AddItem(testCartID, 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 11 || item.Quantity != 4 || item.TotalPrice != 16 {
		t.Fatalf("unexpected item: %+v", item)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddItemProductDeletedDuringUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// the product passes the existence check but is gone by the upsert
	expectAddItemChecks(mock)
	mock.ExpectQuery(`INSERT INTO cart_items`).
		WithArgs(testCartID, 5, 2).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "cart_items_product_id_fkey"})

	_, err = repo.AddItem(testCartID, 5, 2)
	if err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAddItemCartDeletedDuringUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	expectAddItemChecks(mock)
	mock.ExpectQuery(`INSERT INTO cart_items`).
		WithArgs(testCartID, 5, 2).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "cart_items_cart_id_fkey"})

	_, err = repo.AddItem(testCartID, 5, 2)
	if err != ErrCartNotFound {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}

package order

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

const testCartID = "2f5a1f57-7a4a-4d4f-9c63-0f7d8f2a9b11"

func TestPlaceTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM carts WHERE id = \$1 FOR UPDATE`).
		WithArgs(testCartID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testCartID))
	mock.ExpectQuery(`SELECT id FROM customers WHERE user_id = \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "placed_at", "payment_status"}).
			AddRow(8, 3, "2026-08-01T10:00:00Z", "P"))
	mock.ExpectQuery(`FROM cart_items ci`).
		WithArgs(testCartID).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "unit_price"}).
			AddRow(1, 2, 4.0).
			AddRow(2, 1, 2.5))
	// both lines land in a single multi-row insert
	mock.ExpectQuery(`INSERT INTO order_items \(order_id, product_id, quantity, unit_price\) VALUES \(\$1, \$2, \$3, \$4\), \(\$5, \$6, \$7, \$8\) RETURNING id`).
		WithArgs(8, 1, 2, 4.0, 8, 2, 1, 2.5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21).AddRow(22))
	mock.ExpectExec(`DELETE FROM carts WHERE id = \$1`).
		WithArgs(testCartID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ord, err := repo.Place(10, testCartID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.ID != 8 || ord.CustomerID != 3 || len(ord.Items) != 2 {
		t.Fatalf("unexpected order %+v", ord)
	}
	if ord.Items[0].UnitPrice != 4.0 || ord.Items[1].UnitPrice != 2.5 {
		t.Fatalf("prices not snapshotted: %+v", ord.Items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPlaceEmptyCartRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM carts WHERE id = \$1 FOR UPDATE`).
		WithArgs(testCartID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testCartID))
	mock.ExpectQuery(`SELECT id FROM customers WHERE user_id = \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "placed_at", "payment_status"}).
			AddRow(8, 3, "2026-08-01T10:00:00Z", "P"))
	mock.ExpectQuery(`FROM cart_items ci`).
		WithArgs(testCartID).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "unit_price"}))
	mock.ExpectRollback()

	_, err = repo.Place(10, testCartID)
	if err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPlaceUnknownCartRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM carts WHERE id = \$1 FOR UPDATE`).
		WithArgs(testCartID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err = repo.Place(10, testCartID)
	if err != ErrCartNotFound {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

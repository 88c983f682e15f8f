package address

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"storefront/internal/customer"
)

type stubCustomers struct {
	byUser map[int]customer.Customer
}

func (s stubCustomers) GetByUserID(userID int) (customer.Customer, error) {
	cust, ok := s.byUser[userID]
	if !ok {
		return customer.Customer{}, customer.ErrNotFound
	}
	return cust, nil
}

func makeApp() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	customers := stubCustomers{byUser: map[int]customer.Customer{
		10: {ID: 3, UserID: 10},
		11: {ID: 4, UserID: 11},
	}}
	NewHandler(NewService(NewInMemoryRepository(), customers)).RegisterRoutes(app)
	return app
}

func request(t *testing.T, app *fiber.App, method, path, body, userID string) (int, []byte) {
	t.Helper()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		r.Header.Set("X-User-ID", userID)
	}
	res, err := app.Test(r)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func TestAddressCRUD(t *testing.T) {
	app := makeApp()

	status, _ := request(t, app, "GET", "/store/addresses", "", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous, got %d", status)
	}

	status, body := request(t, app, "POST", "/store/addresses", `{"street":"42 Main St","city":"Springfield"}`, "10")
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, string(body))
	}
	var created Address
	if err := json.Unmarshal(body, &created); err != nil || created.ID == 0 {
		t.Fatalf("bad create body %s: %v", string(body), err)
	}
	if created.Street != "42 Main St" || created.City != "Springfield" {
		t.Fatalf("unexpected address: %+v", created)
	}

	path := "/store/addresses/" + strconv.Itoa(created.ID)
	status, body = request(t, app, "PUT", path, `{"street":"7 Oak Ave","city":"Springfield"}`, "10")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", status, string(body))
	}
	var updated Address
	_ = json.Unmarshal(body, &updated)
	if updated.Street != "7 Oak Ave" {
		t.Fatalf("update not applied: %+v", updated)
	}

	status, body = request(t, app, "GET", "/store/addresses", "", "10")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 listing, got %d", status)
	}
	var addrs []Address
	_ = json.Unmarshal(body, &addrs)
	if len(addrs) != 1 {
		t.Fatalf("expected 1 address, got %d", len(addrs))
	}

	status, _ = request(t, app, "DELETE", path, "", "10")
	if status != fiber.StatusNoContent {
		t.Fatalf("expected 204 deleting, got %d", status)
	}
	status, _ = request(t, app, "GET", path, "", "10")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}

func TestAddressScopedToOwner(t *testing.T) {
	app := makeApp()

	_, body := request(t, app, "POST", "/store/addresses", `{"street":"42 Main St","city":"Springfield"}`, "10")
	var created Address
	_ = json.Unmarshal(body, &created)
	path := "/store/addresses/" + strconv.Itoa(created.ID)

	// another customer cannot see, change, or remove it
	status, _ := request(t, app, "GET", path, "", "11")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for other customer's GET, got %d", status)
	}
	status, _ = request(t, app, "PUT", path, `{"street":"stolen","city":"stolen"}`, "11")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for other customer's PUT, got %d", status)
	}
	status, _ = request(t, app, "DELETE", path, "", "11")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for other customer's DELETE, got %d", status)
	}

	// listing never leaks across customers
	status, body = request(t, app, "GET", "/store/addresses", "", "11")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 listing, got %d", status)
	}
	var addrs []Address
	_ = json.Unmarshal(body, &addrs)
	if len(addrs) != 0 {
		t.Fatalf("expected no addresses for other customer, got %d", len(addrs))
	}

	// the owner still has it untouched
	status, body = request(t, app, "GET", path, "", "10")
	if status != fiber.StatusOK {
		t.Fatalf("owner lost access, got %d", status)
	}
	var mine Address
	_ = json.Unmarshal(body, &mine)
	if mine.Street != "42 Main St" {
		t.Fatalf("address was modified: %+v", mine)
	}
}

func TestAddressValidation(t *testing.T) {
	app := makeApp()

	status, body := request(t, app, "POST", "/store/addresses", `{"street":"","city":"Springfield"}`, "10")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty street, got %d", status)
	}
	var fieldErr map[string]string
	_ = json.Unmarshal(body, &fieldErr)
	if fieldErr["street"] == "" {
		t.Fatalf("expected street field error, got %s", string(body))
	}

	status, _ = request(t, app, "POST", "/store/addresses", `{"street":"42 Main St","city":""}`, "10")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty city, got %d", status)
	}

	// a user with no customer profile cannot store addresses
	status, _ = request(t, app, "POST", "/store/addresses", `{"street":"42 Main St","city":"Springfield"}`, "99")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 without a profile, got %d", status)
	}
}

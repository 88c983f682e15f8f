package customer

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"storefront/internal/order"
	"storefront/internal/user"
)

type stubUsers struct {
	perms map[int][]string
}

func (s stubUsers) GetByID(id int) (user.User, error) {
	return user.User{ID: id, Email: "someone@example.com"}, nil
}

func (s stubUsers) HasPermission(userID int, perm string) bool {
	for _, p := range s.perms[userID] {
		if p == perm {
			return true
		}
	}
	return false
}

type stubOrders struct {
	byCustomer map[int][]order.Order
}

func (s stubOrders) ListByCustomer(customerID int) ([]order.Order, error) {
	return s.byCustomer[customerID], nil
}

func makeApp(users stubUsers, orders stubOrders, seed []Customer) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id, "staff": c.Get("X-Staff") == "true"}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	service := NewService(NewInMemoryRepository(seed))
	NewHandler(service, users, orders).RegisterProtectedRoutes(app)
	return app
}

func request(t *testing.T, app *fiber.App, method, path, body, userID, staff string) (int, []byte) {
	t.Helper()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		r.Header.Set("X-User-ID", userID)
	}
	if staff != "" {
		r.Header.Set("X-Staff", staff)
	}
	res, err := app.Test(r)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func seedCustomers() []Customer {
	return []Customer{
		{ID: 3, UserID: 10, Membership: MembershipBronze},
		{ID: 4, UserID: 11, Membership: MembershipGold},
	}
}

func TestMeEndpoint(t *testing.T) {
	app := makeApp(stubUsers{}, stubOrders{}, seedCustomers())

	status, _ := request(t, app, "GET", "/store/customers/me", "", "", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous, got %d", status)
	}

	status, body := request(t, app, "GET", "/store/customers/me", "", "10", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var cust Customer
	_ = json.Unmarshal(body, &cust)
	if cust.ID != 3 || cust.UserID != 10 {
		t.Fatalf("wrong profile returned: %+v", cust)
	}
}

func TestUpdateMe(t *testing.T) {
	app := makeApp(stubUsers{}, stubOrders{}, seedCustomers())

	status, body := request(t, app, "PUT", "/store/customers/me", `{"phone":"555-0100","membership":"S"}`, "10", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, string(body))
	}
	var cust Customer
	_ = json.Unmarshal(body, &cust)
	if cust.Phone != "555-0100" || cust.Membership != MembershipSilver {
		t.Fatalf("update not applied: %+v", cust)
	}

	status, _ = request(t, app, "PUT", "/store/customers/me", `{"membership":"Z"}`, "10", "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad membership, got %d", status)
	}
}

func TestListRequiresStaff(t *testing.T) {
	app := makeApp(stubUsers{}, stubOrders{}, seedCustomers())

	status, _ := request(t, app, "GET", "/store/customers", "", "10", "")
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-staff list, got %d", status)
	}

	status, body := request(t, app, "GET", "/store/customers", "", "1", "true")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 for staff list, got %d", status)
	}
	var customers []Customer
	_ = json.Unmarshal(body, &customers)
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}
}

func TestGetOwnerOrStaff(t *testing.T) {
	app := makeApp(stubUsers{}, stubOrders{}, seedCustomers())

	status, _ := request(t, app, "GET", "/store/customers/3", "", "10", "")
	if status != fiber.StatusOK {
		t.Fatalf("owner should read own profile, got %d", status)
	}

	status, _ = request(t, app, "GET", "/store/customers/4", "", "10", "")
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 reading someone else's profile, got %d", status)
	}

	status, _ = request(t, app, "GET", "/store/customers/4", "", "1", "true")
	if status != fiber.StatusOK {
		t.Fatalf("staff should read any profile, got %d", status)
	}
}

func TestHistoryRequiresPermission(t *testing.T) {
	users := stubUsers{perms: map[int][]string{12: {user.PermViewHistory}}}
	orders := stubOrders{byCustomer: map[int][]order.Order{
		3: {{ID: 8, CustomerID: 3, PaymentStatus: order.PaymentPending}},
	}}
	app := makeApp(users, orders, seedCustomers())

	status, _ := request(t, app, "GET", "/store/customers/3/history", "", "10", "")
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 without view_history, got %d", status)
	}

	status, body := request(t, app, "GET", "/store/customers/3/history", "", "12", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 with view_history, got %d", status)
	}
	var history []order.Order
	_ = json.Unmarshal(body, &history)
	if len(history) != 1 || history[0].ID != 8 {
		t.Fatalf("unexpected history: %s", string(body))
	}

	status, _ = request(t, app, "GET", "/store/customers/99/history", "", "12", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown customer, got %d", status)
	}
}

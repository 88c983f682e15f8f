package image

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"storefront/internal/product"
)

type stubProducts struct {
	ids map[int]bool
}

func (s stubProducts) GetByID(id int) (product.Product, error) {
	if s.ids[id] {
		return product.Product{ID: id}, nil
	}
	return product.Product{}, product.ErrNotFound
}

func (s stubProducts) Exists(id int) (bool, error) {
	return s.ids[id], nil
}

func makeApp() *fiber.App {
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
	service := NewService(NewInMemoryRepository(nil), stubProducts{ids: map[int]bool{5: true}})
	NewHandler(service).RegisterRoutes(app)
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

func TestCreateImageRequiresStaff(t *testing.T) {
	app := makeApp()

	status, _ := request(t, app, "POST", "/store/products/5/images", `{"image":"store/images/bread.png"}`, "", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous, got %d", status)
	}

	status, _ = request(t, app, "POST", "/store/products/5/images", `{"image":"store/images/bread.png"}`, "10", "")
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 non-staff, got %d", status)
	}

	status, body := request(t, app, "POST", "/store/products/5/images", `{"image":"store/images/bread.png"}`, "1", "true")
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201 staff create, got %d: %s", status, string(body))
	}
	var created ProductImage
	if err := json.Unmarshal(body, &created); err != nil || created.ID == 0 {
		t.Fatalf("bad create body %s: %v", string(body), err)
	}
	if created.Image != "store/images/bread.png" {
		t.Fatalf("unexpected image: %+v", created)
	}
}

func TestCreateImageUnknownProduct(t *testing.T) {
	app := makeApp()

	status, body := request(t, app, "POST", "/store/products/99/images", `{"image":"store/images/x.png"}`, "1", "true")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown product, got %d", status)
	}
	var fieldErr map[string]string
	_ = json.Unmarshal(body, &fieldErr)
	if fieldErr["productId"] != "No product with the given ID was found." {
		t.Fatalf("unexpected error body: %s", string(body))
	}

	status, _ = request(t, app, "POST", "/store/products/5/images", `{"image":""}`, "1", "true")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty image reference, got %d", status)
	}
}

func TestListImagesByProduct(t *testing.T) {
	app := makeApp()

	request(t, app, "POST", "/store/products/5/images", `{"image":"store/images/a.png"}`, "1", "true")
	request(t, app, "POST", "/store/products/5/images", `{"image":"store/images/b.png"}`, "1", "true")

	// reads are public
	status, body := request(t, app, "GET", "/store/products/5/images", "", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 listing, got %d", status)
	}
	var images []ProductImage
	_ = json.Unmarshal(body, &images)
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}

	status, _ = request(t, app, "GET", "/store/products/99/images", "", "", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", status)
	}
}

func TestDeleteImage(t *testing.T) {
	app := makeApp()

	_, body := request(t, app, "POST", "/store/products/5/images", `{"image":"store/images/a.png"}`, "1", "true")
	var created ProductImage
	_ = json.Unmarshal(body, &created)
	path := "/store/products/5/images/" + strconv.Itoa(created.ID)

	status, _ := request(t, app, "GET", path, "", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 reading image, got %d", status)
	}

	status, _ = request(t, app, "DELETE", path, "", "10", "")
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-staff delete, got %d", status)
	}

	status, _ = request(t, app, "DELETE", path, "", "1", "true")
	if status != fiber.StatusNoContent {
		t.Fatalf("expected 204 for staff delete, got %d", status)
	}
	status, _ = request(t, app, "GET", path, "", "", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}

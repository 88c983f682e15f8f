package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/user"
)

// Handler exposes product CRUD. Reads are public; writes are staff only.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/store/products", h.list)
	app.Get("/store/products/:id<[0-9]+>", h.get)
	app.Post("/store/products", h.create)
	app.Patch("/store/products/:id<[0-9]+>", h.update)
	app.Delete("/store/products/:id<[0-9]+>", h.delete)
}

func requireStaff(c *fiber.Ctx) error {
	staff, err := user.IsStaffFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !staff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "staff only"})
	}
	return nil
}

func (h *Handler) list(c *fiber.Ctx) error {
	q := ListQuery{
		CollectionID: c.QueryInt("collection_id"),
		Search:       c.Query("search"),
		Ordering:     c.Query("ordering"),
		Page:         c.QueryInt("page", 1),
		PageSize:     c.QueryInt("page_size"),
	}
	if v := c.Query("unit_price_gt"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.PriceGT = f
		}
	}
	if v := c.Query("unit_price_lt"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.PriceLT = f
		}
	}

	page, err := h.service.List(q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(page)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(p)
}

type productRequest struct {
	Title        *string  `json:"title"`
	Slug         *string  `json:"slug"`
	Description  *string  `json:"description"`
	UnitPrice    *float64 `json:"unitPrice"`
	Inventory    *int     `json:"inventory"`
	CollectionID *int     `json:"collectionId"`
}

func (req *productRequest) apply(p Product) Product {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Slug != nil {
		p.Slug = *req.Slug
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if req.Inventory != nil {
		p.Inventory = *req.Inventory
	}
	if req.CollectionID != nil {
		p.CollectionID = *req.CollectionID
	}
	return p
}

func (h *Handler) create(c *fiber.Ctx) error {
	if err := requireStaff(c); err != nil {
		return err
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(payload.apply(Product{}))
	if err != nil {
		if status, body := validationError(err); status != 0 {
			return c.Status(status).JSON(body)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	if err := requireStaff(c); err != nil {
		return err
	}

	id, _ := strconv.Atoi(c.Params("id"))
	existing, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(payload.apply(existing))
	if err != nil {
		if status, body := validationError(err); status != 0 {
			return c.Status(status).JSON(body)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := requireStaff(c); err != nil {
		return err
	}

	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Delete(id); err != nil {
		switch err {
		case ErrOrdered:
			return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": err.Error()})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func validationError(err error) (int, fiber.Map) {
	switch err {
	case ErrTitleRequired:
		return fiber.StatusBadRequest, fiber.Map{"title": err.Error()}
	case ErrInvalidPrice:
		return fiber.StatusBadRequest, fiber.Map{"unitPrice": err.Error()}
	case ErrInvalidInventory:
		return fiber.StatusBadRequest, fiber.Map{"inventory": err.Error()}
	}
	return 0, nil
}

package collection

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/user"
)

// Handler exposes collection CRUD. Reads are public; writes are staff only.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/store/collections", h.list)
	app.Get("/store/collections/:id<[0-9]+>", h.get)
	app.Post("/store/collections", h.create)
	app.Put("/store/collections/:id<[0-9]+>", h.update)
	app.Delete("/store/collections/:id<[0-9]+>", h.delete)
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
	collections, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(collections)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	col, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "collection not found"})
	}
	return c.JSON(col)
}

type collectionRequest struct {
	Title             string `json:"title"`
	FeaturedProductID *int   `json:"featuredProductId"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	if err := requireStaff(c); err != nil {
		return err
	}

	payload := new(collectionRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(Collection{Title: payload.Title, FeaturedProductID: payload.FeaturedProductID})
	if err != nil {
		if err == ErrTitleRequired {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"title": err.Error()})
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
	payload := new(collectionRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(Collection{ID: id, Title: payload.Title, FeaturedProductID: payload.FeaturedProductID})
	if err != nil {
		switch err {
		case ErrTitleRequired:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"title": err.Error()})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "collection not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
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
		case ErrHasProducts:
			return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": err.Error()})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "collection not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

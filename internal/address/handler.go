package address

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/customer"
	"storefront/internal/user"
)

// Handler serves the caller's own addresses; there is no cross-customer access.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/store/addresses", h.list)
	app.Post("/store/addresses", h.create)
	app.Get("/store/addresses/:id<[0-9]+>", h.get)
	app.Put("/store/addresses/:id<[0-9]+>", h.update)
	app.Delete("/store/addresses/:id<[0-9]+>", h.delete)
}

type addressRequest struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	addrs, err := h.service.ListForUser(userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(addrs)
}

func (h *Handler) get(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, _ := strconv.Atoi(c.Params("id"))
	addr, err := h.service.GetForUser(userID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(addr)
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	addr, err := h.service.CreateForUser(userID, payload.Street, payload.City)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(addr)
}

func (h *Handler) update(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, _ := strconv.Atoi(c.Params("id"))
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	addr, err := h.service.UpdateForUser(userID, id, payload.Street, payload.City)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(addr)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.DeleteForUser(userID, id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound, customer.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "not found"})
	case ErrStreetRequired:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"street": err.Error()})
	case ErrCityRequired:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"city": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

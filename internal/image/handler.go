package image

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/user"
)

// Handler exposes image references nested under a product. Reads are open;
// only staff may attach or remove images.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/store/products/:productID<[0-9]+>/images", h.list)
	app.Post("/store/products/:productID<[0-9]+>/images", h.create)
	app.Get("/store/products/:productID<[0-9]+>/images/:id<[0-9]+>", h.get)
	app.Delete("/store/products/:productID<[0-9]+>/images/:id<[0-9]+>", h.delete)
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
	productID, _ := strconv.Atoi(c.Params("productID"))
	images, err := h.service.ListByProduct(productID)
	if err != nil {
		if err == ErrNoSuchProduct {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(images)
}

func (h *Handler) create(c *fiber.Ctx) error {
	if err := requireStaff(c); err != nil {
		return err
	}

	productID, _ := strconv.Atoi(c.Params("productID"))
	payload := new(struct {
		Image string `json:"image"`
	})
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"image": "image reference is required"})
	}

	created, err := h.service.Create(ProductImage{ProductID: productID, Image: payload.Image})
	if err != nil {
		if err == ErrNoSuchProduct {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"productId": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) get(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productID"))
	id, _ := strconv.Atoi(c.Params("id"))
	img, err := h.service.Get(productID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "image not found"})
	}
	return c.JSON(img)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := requireStaff(c); err != nil {
		return err
	}

	productID, _ := strconv.Atoi(c.Params("productID"))
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Delete(productID, id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "image not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

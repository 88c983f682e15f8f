package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler serves anonymous carts. No authentication: possession of the cart
// uuid is the access credential. PUT on items is deliberately not registered.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/store/carts", h.create)
	app.Get("/store/carts/:cartID", h.get)
	app.Delete("/store/carts/:cartID", h.delete)

	app.Get("/store/carts/:cartID/items", h.listItems)
	app.Post("/store/carts/:cartID/items", h.addItem)
	app.Get("/store/carts/:cartID/items/:itemID<[0-9]+>", h.getItem)
	app.Patch("/store/carts/:cartID/items/:itemID<[0-9]+>", h.updateItem)
	app.Delete("/store/carts/:cartID/items/:itemID<[0-9]+>", h.deleteItem)
}

func (h *Handler) create(c *fiber.Ctx) error {
	cart, err := h.service.Create()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

func (h *Handler) get(c *fiber.Ctx) error {
	cart, err := h.service.Get(c.Params("cartID"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cart)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("cartID")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.Params("cartID"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(items)
}

type addItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	item, err := h.service.AddItem(c.Params("cartID"), payload.ProductID, payload.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *Handler) getItem(c *fiber.Ctx) error {
	itemID, _ := strconv.Atoi(c.Params("itemID"))
	item, err := h.service.GetItem(c.Params("cartID"), itemID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(item)
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	itemID, _ := strconv.Atoi(c.Params("itemID"))
	item, err := h.service.UpdateItemQuantity(c.Params("cartID"), itemID, payload.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(item)
}

func (h *Handler) deleteItem(c *fiber.Ctx) error {
	itemID, _ := strconv.Atoi(c.Params("itemID"))
	if err := h.service.DeleteItem(c.Params("cartID"), itemID); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch err {
	case ErrCartNotFound, ErrItemNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case ErrProductNotFound:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"productId": err.Error()})
	case ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"quantity": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

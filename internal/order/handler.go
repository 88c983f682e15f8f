package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/user"
)

// ResolveCustomerID maps an authenticated user to their customer id; it is
// injected so this package stays decoupled from the customer service.
type ResolveCustomerID func(userID int) (int, error)

type Handler struct {
	service    *Service
	customerID ResolveCustomerID
}

func NewHandler(service *Service, customerID ResolveCustomerID) *Handler {
	return &Handler{service: service, customerID: customerID}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/store/orders", h.list)
	app.Post("/store/orders", h.place)
	app.Get("/store/orders/:id<[0-9]+>", h.get)
	app.Patch("/store/orders/:id<[0-9]+>", h.updateStatus)
	app.Delete("/store/orders/:id<[0-9]+>", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	staff, _ := user.IsStaffFromCtx(c)

	var orders []Order
	if staff {
		orders, err = h.service.ListAll()
	} else {
		orders, err = h.service.ListByUser(userID)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

type placeRequest struct {
	CartID string `json:"cartId"`
}

func (h *Handler) place(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(placeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.CartID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"cartId": "cartId is required"})
	}

	ord, err := h.service.Place(userID, payload.CartID)
	if err != nil {
		switch err {
		case ErrCartNotFound, ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"cartId": err.Error()})
		case ErrNoCustomer:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(ord)
}

func (h *Handler) get(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, _ := strconv.Atoi(c.Params("id"))

	ord, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	if staff, _ := user.IsStaffFromCtx(c); !staff {
		customerID, err := h.customerID(userID)
		if err != nil || customerID != ord.CustomerID {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
	}
	return c.JSON(ord)
}

type statusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	if err := h.requireStaff(c); err != nil {
		return err
	}
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	id, _ := strconv.Atoi(c.Params("id"))

	ord, err := h.service.UpdatePaymentStatus(id, payload.PaymentStatus)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"paymentStatus": err.Error()})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.requireStaff(c); err != nil {
		return err
	}
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) requireStaff(c *fiber.Ctx) error {
	staff, err := user.IsStaffFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !staff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "staff only"})
	}
	return nil
}

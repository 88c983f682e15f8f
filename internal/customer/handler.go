package customer

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/order"
	"storefront/internal/user"
)

// OrderLister is the slice of the order service the history endpoint needs.
type OrderLister interface {
	ListByCustomer(customerID int) ([]order.Order, error)
}

type Handler struct {
	service *Service
	users   user.ServiceInterface
	orders  OrderLister
}

func NewHandler(service *Service, users user.ServiceInterface, orders OrderLister) *Handler {
	return &Handler{service: service, users: users, orders: orders}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	// "me" routes must be registered ahead of the :id ones
	app.Get("/store/customers/me", h.me)
	app.Put("/store/customers/me", h.updateMe)
	app.Get("/store/customers", h.list)
	app.Get("/store/customers/:id<[0-9]+>", h.get)
	app.Get("/store/customers/:id<[0-9]+>/history", h.history)
}

func (h *Handler) me(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cust, err := h.service.GetByUserID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
	}
	return c.JSON(cust)
}

type updateRequest struct {
	Phone      *string `json:"phone"`
	BirthDate  *string `json:"birthDate"`
	Membership *string `json:"membership"`
}

func (h *Handler) updateMe(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cust, err := h.service.GetByUserID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
	}

	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Phone != nil {
		cust.Phone = *payload.Phone
	}
	if payload.BirthDate != nil {
		cust.BirthDate = payload.BirthDate
	}
	if payload.Membership != nil {
		cust.Membership = *payload.Membership
	}

	updated, err := h.service.Update(cust)
	if err != nil {
		if err == ErrInvalidMembership {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"membership": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) list(c *fiber.Ctx) error {
	staff, err := user.IsStaffFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !staff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "staff only"})
	}

	customers, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(customers)
}

func (h *Handler) get(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	cust, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
	}

	staff, _ := user.IsStaffFromCtx(c)
	if !staff && cust.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
	}
	return c.JSON(cust)
}

func (h *Handler) history(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !h.users.HasPermission(userID, user.PermViewHistory) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "view history permission required"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if _, err := h.service.GetByID(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
	}

	orders, err := h.orders.ListByCustomer(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

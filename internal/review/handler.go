package review

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes reviews nested under a product. Reviews are open to any
// caller, matching the catalog read surface.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/store/products/:productID<[0-9]+>/reviews", h.list)
	app.Post("/store/products/:productID<[0-9]+>/reviews", h.create)
	app.Get("/store/products/:productID<[0-9]+>/reviews/:id<[0-9]+>", h.get)
	app.Patch("/store/products/:productID<[0-9]+>/reviews/:id<[0-9]+>", h.update)
	app.Delete("/store/products/:productID<[0-9]+>/reviews/:id<[0-9]+>", h.delete)
}

type reviewRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productID"))
	reviews, err := h.service.ListByProduct(productID)
	if err != nil {
		if err == ErrNoSuchProduct {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(reviews)
}

func (h *Handler) create(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productID"))
	payload := new(reviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" || payload.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name and description are required"})
	}

	created, err := h.service.Create(Review{ProductID: productID, Name: payload.Name, Description: payload.Description})
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
	rev, err := h.service.Get(productID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "review not found"})
	}
	return c.JSON(rev)
}

func (h *Handler) update(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productID"))
	id, _ := strconv.Atoi(c.Params("id"))

	existing, err := h.service.Get(productID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "review not found"})
	}

	payload := new(reviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name != "" {
		existing.Name = payload.Name
	}
	if payload.Description != "" {
		existing.Description = payload.Description
	}

	updated, err := h.service.Update(existing)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productID"))
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Delete(productID, id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "review not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront/internal/backend"
	"github.com/wichananm65/storefront/internal/session"
)

// Handler serves the order screens of the admin console.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterAdminRoutes expects app to be gated by session.Handler.RequireAdmin.
func (h *Handler) RegisterAdminRoutes(app fiber.Router) {
	app.Get("/orders", h.list)
	app.Put("/orders/:id", h.updateStatus)
	app.Delete("/orders/:id", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext(), session.TokenFromCtx(c))
	if err != nil {
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Failed to load orders")})
	}
	return c.JSON(orders)
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	updated, err := h.service.UpdateStatus(c.UserContext(), session.TokenFromCtx(c), c.Params("id"), payload.Status)
	if err != nil {
		return writeError(c, err, "Failed to update order")
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), session.TokenFromCtx(c), c.Params("id")); err != nil {
		return writeError(c, err, "Failed to delete order")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func writeError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrMissingID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	default:
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, fallback)})
	}
}

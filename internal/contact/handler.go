package contact

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront/internal/backend"
	"github.com/wichananm65/storefront/internal/session"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/contact", h.send)
}

// RegisterAdminRoutes expects app to be gated by session.Handler.RequireAdmin.
func (h *Handler) RegisterAdminRoutes(app fiber.Router) {
	app.Get("/messages", h.list)
	app.Delete("/messages/:id", h.delete)
}

func (h *Handler) send(c *fiber.Ctx) error {
	payload := new(Message)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.Send(c.UserContext(), *payload); err != nil {
		if errors.Is(err, ErrMissingName) || errors.Is(err, ErrInvalidEmail) || errors.Is(err, ErrMissingMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, FailureMessage)})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": SuccessMessage})
}

func (h *Handler) list(c *fiber.Ctx) error {
	msgs, err := h.service.List(c.UserContext(), session.TokenFromCtx(c))
	if err != nil {
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Failed to fetch messages")})
	}
	return c.JSON(msgs)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), session.TokenFromCtx(c), c.Params("id")); err != nil {
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Failed to delete message")})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

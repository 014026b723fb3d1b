package newsletter

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
	app.Post("/subscribe", h.subscribe)
}

// RegisterAdminRoutes expects app to be gated by session.Handler.RequireAdmin.
func (h *Handler) RegisterAdminRoutes(app fiber.Router) {
	app.Get("/subscribers", h.list)
	app.Delete("/subscribers/:id", h.delete)
}

func (h *Handler) subscribe(c *fiber.Ctx) error {
	var payload struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.Subscribe(c.UserContext(), payload.Email); err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, FailureMessage)})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": SuccessMessage})
}

func (h *Handler) list(c *fiber.Ctx) error {
	subs, err := h.service.List(c.UserContext(), session.TokenFromCtx(c))
	if err != nil {
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Failed to fetch subscribers.")})
	}
	return c.JSON(subs)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), session.TokenFromCtx(c), c.Params("id")); err != nil {
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Failed to delete subscriber.")})
	}
	return c.JSON(fiber.Map{"message": "Subscriber deleted successfully!"})
}

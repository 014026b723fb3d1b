package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront/internal/backend"
	"github.com/wichananm65/storefront/internal/session"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes expects app to be gated by session.Handler.RequireAdmin.
func (h *Handler) RegisterAdminRoutes(app fiber.Router) {
	app.Get("/me", h.me)
	app.Get("/users", h.getUsers)
	app.Post("/users", h.createUser)
	app.Put("/users/:id", h.updateUser)
	app.Delete("/users/:id", h.deleteUser)
}

func (h *Handler) me(c *fiber.Ctx) error {
	return c.JSON(h.service.Me(c.UserContext(), session.TokenFromCtx(c)))
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext(), session.TokenFromCtx(c))
	if err != nil {
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Failed to fetch users")})
	}
	return c.JSON(users)
}

func (h *Handler) createUser(c *fiber.Ctx) error {
	payload := new(Input)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	u, err := h.service.Create(c.UserContext(), session.TokenFromCtx(c), *payload)
	if err != nil {
		return writeError(c, err, "Failed to create user")
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	payload := new(Input)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	u, err := h.service.Update(c.UserContext(), session.TokenFromCtx(c), c.Params("id"), *payload)
	if err != nil {
		return writeError(c, err, "Failed to update user")
	}
	return c.JSON(u)
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), session.TokenFromCtx(c), c.Params("id")); err != nil {
		return writeError(c, err, "Failed to delete user")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func writeError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrMissingUsername), errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrMissingPassword), errors.Is(err, ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	default:
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, fallback)})
	}
}

package product

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

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/products", h.getProducts)
	app.Get("/products/:id", h.getProduct)
}

// RegisterAdminRoutes expects app to be gated by session.Handler.RequireAdmin.
func (h *Handler) RegisterAdminRoutes(app fiber.Router) {
	app.Get("/products", h.getProducts)
	app.Post("/products", h.createProduct)
	app.Put("/products/:id", h.updateProduct)
	app.Delete("/products/:id", h.deleteProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Failed to load products")})
	}
	return c.JSON(Filter(products, c.Query("tag"), c.Query("q")))
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Failed to load product")
	}
	return c.JSON(p)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(Record)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	created, err := h.service.Create(c.UserContext(), session.TokenFromCtx(c), *payload)
	if err != nil {
		return writeError(c, err, "Failed to create product")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	payload := new(Record)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	updated, err := h.service.Update(c.UserContext(), session.TokenFromCtx(c), c.Params("id"), *payload)
	if err != nil {
		return writeError(c, err, "Failed to update product")
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), session.TokenFromCtx(c), c.Params("id")); err != nil {
		return writeError(c, err, "Failed to delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func writeError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrMissingName), errors.Is(err, ErrInvalidPrice):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	default:
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, fallback)})
	}
}

package blog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront/internal/backend"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/blog", h.list)
}

func (h *Handler) list(c *fiber.Ctx) error {
	posts, err := h.service.Search(c.UserContext(), c.Query("q"), c.Query("category", CategoryAll))
	if err != nil {
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Failed to load posts")})
	}
	return c.JSON(posts)
}

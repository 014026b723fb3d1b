package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront/internal/backend"
	"github.com/wichananm65/storefront/internal/session"
)

type Handler struct {
	dashboard *Dashboard
}

func NewHandler(d *Dashboard) *Handler {
	return &Handler{dashboard: d}
}

// RegisterAdminRoutes expects app to be gated by session.Handler.RequireAdmin.
func (h *Handler) RegisterAdminRoutes(app fiber.Router) {
	app.Get("/dashboard", h.dashboardCounts)
}

func (h *Handler) dashboardCounts(c *fiber.Ctx) error {
	counts, err := h.dashboard.Counts(c.UserContext(), session.TokenFromCtx(c))
	if err != nil {
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Error fetching counts")})
	}
	return c.JSON(counts)
}

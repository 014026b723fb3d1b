package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront/internal/session"
)

// Handler serves the payment page. All routes sit behind the session gate.
type Handler struct {
	checkout *Checkout
}

func NewHandler(co *Checkout) *Handler {
	return &Handler{checkout: co}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router, gate fiber.Handler) {
	app.Get("/payment", gate, h.view)
	app.Put("/payment/form", gate, h.updateForm)
	app.Post("/payment/place-order", gate, h.placeOrder)
}

func (h *Handler) view(c *fiber.Ctx) error {
	v, err := h.checkout.View(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(v)
}

func (h *Handler) updateForm(c *fiber.Ctx) error {
	payload := new(Form)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	f, err := h.checkout.UpdateForm(*payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(f)
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	res, err := h.checkout.PlaceOrder(c.UserContext(), session.TokenFromCtx(c))
	if err != nil {
		var subErr *SubmitError
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrSubmissionInProgress):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		case errors.As(err, &subErr):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": subErr.Message})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

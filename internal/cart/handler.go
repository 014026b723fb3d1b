package cart

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the cart page. All routes sit behind the session gate.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router, gate fiber.Handler) {
	app.Get("/cart", gate, h.getCart)
	app.Post("/cart/items", gate, h.addItem)
	app.Post("/cart/items/:id/increment", gate, h.increment)
	app.Post("/cart/items/:id/decrement", gate, h.decrement)
	app.Put("/cart/items/:id", gate, h.setQuantity)
	app.Delete("/cart/items/:id", gate, h.removeItem)
	app.Delete("/cart", gate, h.clear)
	app.Post("/cart/place-order", gate, h.placeOrder)
}

type view struct {
	Items        []Item  `json:"items"`
	Count        int     `json:"count"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"totalDisplay"`
	Empty        bool    `json:"empty"`
}

func newView(items []Item) view {
	total := Total(items)
	return view{
		Items:        items,
		Count:        Units(items),
		Total:        total,
		TotalDisplay: FormatTotal(total),
		Empty:        len(items) == 0,
	}
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	items, err := h.service.Items(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(newView(items))
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(Item)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	items, err := h.service.Add(c.UserContext(), *payload)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newView(items))
}

func (h *Handler) increment(c *fiber.Ctx) error {
	items, err := h.service.Increment(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newView(items))
}

func (h *Handler) decrement(c *fiber.Ctx) error {
	items, err := h.service.Decrement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newView(items))
}

func (h *Handler) setQuantity(c *fiber.Ctx) error {
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	items, err := h.service.SetQuantity(c.UserContext(), c.Params("id"), payload.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newView(items))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	items, err := h.service.Remove(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newView(items))
}

func (h *Handler) clear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(newView([]Item{}))
}

// placeOrder only navigates; the order itself is placed from the payment page.
func (h *Handler) placeOrder(c *fiber.Ctx) error {
	return c.Redirect("/payment", fiber.StatusSeeOther)
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidItem), errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidPrice):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

package session

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront/internal/backend"
)

const localsKey = "session"

// Handler exposes the login/account pages and the session gates.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/auth/login", h.login)
	app.Post("/auth/register", h.register)
	app.Post("/auth/logout", h.logout)
	app.Get("/auth/session", h.current)
	app.Post("/auth/forgot-password", h.forgotPassword)
	app.Post("/auth/reset-password", h.resetPassword)
}

// RequireSession loads the session and redirects to redirectTo when nobody is
// signed in. The protected handler never runs in that case.
func (h *Handler) RequireSession(redirectTo string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := h.service.Current(c.UserContext())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		if !sess.Authenticated() {
			return c.Redirect(redirectTo, fiber.StatusFound)
		}
		c.Locals(localsKey, sess)
		return c.Next()
	}
}

// RequireAdmin rejects anyone without an admin session.
func (h *Handler) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := h.service.Current(c.UserContext())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		if !sess.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		if !sess.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
		}
		c.Locals(localsKey, sess)
		return c.Next()
	}
}

// FromCtx returns the session stored by RequireSession/RequireAdmin.
func FromCtx(c *fiber.Ctx) (Session, bool) {
	sess, ok := c.Locals(localsKey).(Session)
	return sess, ok
}

// TokenFromCtx is the bearer token for backend calls made on behalf of the caller.
func TokenFromCtx(c *fiber.Ctx) string {
	sess, _ := FromCtx(c)
	return sess.Token
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	u, redirect, err := h.service.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrMissingCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Failed to login")})
	}
	return c.JSON(fiber.Map{"user": u, "redirect": redirect})
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	u, err := h.service.Register(c.UserContext(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingUsername), errors.Is(err, ErrMissingCredentials), errors.Is(err, ErrInvalidEmail):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Failed to register")})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": u, "redirect": RedirectTarget(u.Role)})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) current(c *fiber.Ctx) error {
	sess, err := h.service.Current(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if !sess.Authenticated() {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	return c.JSON(fiber.Map{"authenticated": true, "user": sess.User})
}

func (h *Handler) forgotPassword(c *fiber.Ctx) error {
	var payload struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.ForgotPassword(c.UserContext(), payload.Email); err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Error")})
	}
	return c.JSON(fiber.Map{"message": "OTP sent to your email.", "redirect": "/reset-password?email=" + url.QueryEscape(strings.TrimSpace(payload.Email))})
}

func (h *Handler) resetPassword(c *fiber.Ctx) error {
	payload := new(ResetRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.ResetPassword(c.UserContext(), *payload); err != nil {
		if errors.Is(err, ErrMissingResetFields) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(backend.StatusCode(err)).JSON(fiber.Map{"message": backend.UserMessage(err, "Error")})
	}
	return c.JSON(fiber.Map{"message": "Password reset successful!", "redirect": "/login"})
}

package handlers

import "github.com/gofiber/fiber/v2"

// PagesHandler serves the guarded navigation endpoints. Rendering is the
// front end's job; these respond with a minimal page descriptor so the route
// guard has concrete endpoints to protect.
type PagesHandler struct{}

// NewPagesHandler constructs the handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Login serves GET /login.
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	return h.page(c, "login")
}

// Signup serves GET /signup.
func (h *PagesHandler) Signup(c *fiber.Ctx) error {
	return h.page(c, "signup")
}

// VerifyOTP serves GET /verify-otp.
func (h *PagesHandler) VerifyOTP(c *fiber.Ctx) error {
	return h.page(c, "verify-otp")
}

// Dashboard serves GET /dashboard.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	return h.page(c, "dashboard")
}

// Profile serves GET /dashboard/profile.
func (h *PagesHandler) Profile(c *fiber.Ctx) error {
	return h.page(c, "profile")
}

// Admin serves GET /dashboard/admin.
func (h *PagesHandler) Admin(c *fiber.Ctx) error {
	return h.page(c, "admin")
}

func (h *PagesHandler) page(c *fiber.Ctx, name string) error {
	return c.JSON(fiber.Map{"page": name})
}

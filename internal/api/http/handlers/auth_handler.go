package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-gateway/internal/api/dto"
	"github.com/spec-kit/account-gateway/internal/auth"
	"github.com/spec-kit/account-gateway/internal/service"
	apperrors "github.com/spec-kit/account-gateway/pkg/util"
)

// AuthHandler exposes the authentication flow endpoints. It is the only
// place session cookies are written or cleared.
type AuthHandler struct {
	flow    *service.FlowService
	cookies *auth.CookieManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(flow *service.FlowService, cookies *auth.CookieManager) *AuthHandler {
	return &AuthHandler{flow: flow, cookies: cookies}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	out := h.flow.Signup(c.UserContext(), req.Name, req.Email, req.Password, req.ContactNumber)
	if out.Success {
		h.cookies.IssueTicket(c, out.Ticket)
	}
	return c.JSON(out.Result)
}

// VerifyOTP handles POST /auth/verify-otp. A valid pending-verification
// ticket cookie is a precondition; success writes the session cookies and
// consumes the ticket.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || req.Email == "" || req.OTP == "" {
		return apperrors.NewValidationError("userId, email, otp required", nil)
	}

	encoded := c.Cookies(auth.VerificationCookie)
	out := h.flow.VerifyOTP(c.UserContext(), encoded, req.UserID, req.Email, req.OTP)
	if out.Success {
		h.cookies.IssueSession(c, out.AccessToken, out.RefreshToken)
		h.cookies.ClearTicket(c)
	}
	return c.JSON(out.Result)
}

// ResendOTP handles POST /auth/resend-otp.
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || req.Email == "" {
		return apperrors.NewValidationError("userId and email required", nil)
	}

	res := h.flow.ResendOTP(c.UserContext(), req.UserID, req.Email)
	if res.Limited {
		c.Status(http.StatusTooManyRequests)
	}
	return c.JSON(res)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	out := h.flow.Login(c.UserContext(), req.Email, req.Password)
	if out.Success {
		h.cookies.IssueSession(c, out.AccessToken, out.RefreshToken)
	}
	return c.JSON(out.Result)
}

// Logout handles POST /auth/logout. It clears both token cookies whether or
// not a session exists and always redirects to login; a missing cookie is a
// no-op, not an error.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.flow.Logout(c.UserContext(), h.cookies.AccessToken(c))
	h.cookies.ClearSession(c)
	return c.Redirect(auth.LoginPath, fiber.StatusFound)
}

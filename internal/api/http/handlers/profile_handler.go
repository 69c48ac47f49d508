package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-gateway/internal/api/dto"
	"github.com/spec-kit/account-gateway/internal/auth"
	"github.com/spec-kit/account-gateway/internal/backend"
	"github.com/spec-kit/account-gateway/internal/service"
	apperrors "github.com/spec-kit/account-gateway/pkg/util"
)

// ProfileHandler exposes the caller's own account operations.
type ProfileHandler struct {
	directory *service.DirectoryService
	cookies   *auth.CookieManager
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(directory *service.DirectoryService, cookies *auth.CookieManager) *ProfileHandler {
	return &ProfileHandler{directory: directory, cookies: cookies}
}

// Me handles GET /users/profile/me.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	token := h.cookies.AccessToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	user, err := h.directory.CurrentUser(c.UserContext(), token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

// Update handles PATCH /users/profile/me.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	token := h.cookies.AccessToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" && req.ContactNumber == "" && req.Password == "" {
		return apperrors.NewValidationError("nothing to update", nil)
	}

	res := h.directory.UpdateProfile(c.UserContext(), token, backend.ProfileUpdate{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Password:      req.Password,
	})
	return c.JSON(res)
}

// RequestEmailChange handles POST /users/profile/email/request.
func (h *ProfileHandler) RequestEmailChange(c *fiber.Ctx) error {
	token := h.cookies.AccessToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.EmailChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NewEmail == "" || req.Password == "" {
		return apperrors.NewValidationError("newEmail and password required", nil)
	}

	res := h.directory.RequestEmailChange(c.UserContext(), token, req.NewEmail, req.Password)
	return c.JSON(res)
}

// VerifyEmailChange handles POST /users/profile/email/verify.
func (h *ProfileHandler) VerifyEmailChange(c *fiber.Ctx) error {
	token := h.cookies.AccessToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.EmailChangeVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NewEmail == "" || req.OTP == "" {
		return apperrors.NewValidationError("newEmail and otp required", nil)
	}

	res := h.directory.VerifyEmailChange(c.UserContext(), token, req.NewEmail, req.OTP)
	return c.JSON(res)
}

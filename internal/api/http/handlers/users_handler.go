package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-gateway/internal/api/dto"
	"github.com/spec-kit/account-gateway/internal/auth"
	"github.com/spec-kit/account-gateway/internal/service"
	apperrors "github.com/spec-kit/account-gateway/pkg/util"
)

// confirmDeleteHeader must be set by the client before a destructive delete
// is forwarded; it replaces the browser-side confirmation dialog.
const confirmDeleteHeader = "X-Confirm-Delete"

// UsersHandler exposes the user directory and privileged mutations.
type UsersHandler struct {
	directory *service.DirectoryService
	cookies   *auth.CookieManager
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(directory *service.DirectoryService, cookies *auth.CookieManager) *UsersHandler {
	return &UsersHandler{directory: directory, cookies: cookies}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	token := h.cookies.AccessToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	users, err := h.directory.ListUsers(c.UserContext(), token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": users})
}

// ChangeRole handles PATCH /users/:id/role.
func (h *UsersHandler) ChangeRole(c *fiber.Ctx) error {
	token := h.cookies.AccessToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	targetID := c.Params("id")
	if targetID == "" {
		return apperrors.NewValidationError("user id required", nil)
	}

	var req dto.RoleChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !req.NewRole.Valid() {
		return apperrors.NewValidationError("unknown role", map[string]any{"newRole": req.NewRole})
	}

	res, err := h.directory.ChangeRole(c.UserContext(), token, targetID, req.NewRole)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Delete handles DELETE /users/:id. Deletion is irreversible, so the request
// must carry explicit confirmation.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	token := h.cookies.AccessToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	targetID := c.Params("id")
	if targetID == "" {
		return apperrors.NewValidationError("user id required", nil)
	}
	if c.Get(confirmDeleteHeader) != "true" {
		return apperrors.NewValidationError("delete requires confirmation", map[string]any{
			"header": confirmDeleteHeader,
		})
	}

	res, err := h.directory.DeleteUser(c.UserContext(), token, targetID)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greengotts/greengotts-api/internal/application/admin"
	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// AdminHandler maneja el allowlist de acceso y las asignaciones de rol.
// Todas estas rutas exigen ADMIN global (ver router).
type AdminHandler struct {
	uc *admin.AdminUseCase
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(uc *admin.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListAllowlist godoc
// @Summary      Listar el allowlist de acceso
// @Tags         admin
// @Produce      json
// @Param        status  query  string  false  "pending | approved | revoked"
// @Success      200  {array}  dto.AllowlistEntryResponse
// @Security     BearerAuth
// @Router       /api/admin/allowlist [get]
func (h *AdminHandler) ListAllowlist(c *fiber.Ctx) error {
	entries, err := h.uc.ListAllowlist(c.Context(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AllowlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAllowlistResponse(e))
	}
	return c.JSON(out)
}

// AddAllowlistEntry godoc
// @Summary      Agregar un email al allowlist
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllowlistRequest  true  "email, status opcional"
// @Success      201   {object}  dto.AllowlistEntryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/allowlist [post]
func (h *AdminHandler) AddAllowlistEntry(c *fiber.Ctx) error {
	var in dto.AllowlistRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" {
		return badRequest(c, "email es requerido")
	}
	entry, err := h.uc.AddAllowlistEntry(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAllowlistResponse(entry))
}

// UpdateAllowlistStatus godoc
// @Summary      Cambiar el estado de una entrada del allowlist
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        email  path  string  true  "email de la entrada"
// @Param        body   body  dto.AllowlistRequest  true  "status"
// @Success      200    {object}  dto.AllowlistEntryResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/allowlist/{email} [put]
func (h *AdminHandler) UpdateAllowlistStatus(c *fiber.Ctx) error {
	var in dto.AllowlistRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	entry, err := h.uc.UpdateAllowlistStatus(c.Context(), c.Params("email"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAllowlistResponse(entry))
}

// DeleteAllowlistEntry godoc
// @Summary      Eliminar una entrada del allowlist
// @Tags         admin
// @Param        email  path  string  true  "email de la entrada"
// @Success      204
// @Security     BearerAuth
// @Router       /api/admin/allowlist/{email} [delete]
func (h *AdminHandler) DeleteAllowlistEntry(c *fiber.Ctx) error {
	if err := h.uc.DeleteAllowlistEntry(c.Context(), c.Params("email")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PendingCount godoc
// @Summary      Cantidad de solicitudes de acceso pendientes
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]int
// @Security     BearerAuth
// @Router       /api/admin/allowlist/pending/count [get]
func (h *AdminHandler) PendingCount(c *fiber.Ctx) error {
	n, err := h.uc.PendingCount(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"pending": n})
}

// ListUsers godoc
// @Summary      Listar usuarios con sus asignaciones de rol
// @Tags         admin
// @Produce      json
// @Param        limit   query  int  false  "límite (default 20)"
// @Param        offset  query  int  false  "offset"
// @Success      200  {array}  dto.UserWithRolesResponse
// @Security     BearerAuth
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()
	users, err := h.uc.ListUsersWithRoles(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GrantRole godoc
// @Summary      Otorgar un rol a un usuario (global o acotado a equipo)
// @Tags         admin
// @Accept       json
// @Param        id    path  string  true  "id del usuario"
// @Param        body  body  dto.RoleGrantRequest  true  "role, team_id opcional"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/users/{id}/roles [post]
func (h *AdminHandler) GrantRole(c *fiber.Ctx) error {
	var in dto.RoleGrantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.GrantRole(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RevokeRole godoc
// @Summary      Revocar un rol de un usuario
// @Tags         admin
// @Accept       json
// @Param        id    path  string  true  "id del usuario"
// @Param        body  body  dto.RoleGrantRequest  true  "role, team_id opcional"
// @Success      204
// @Security     BearerAuth
// @Router       /api/admin/users/{id}/roles [delete]
func (h *AdminHandler) RevokeRole(c *fiber.Ctx) error {
	var in dto.RoleGrantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.RevokeRole(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toAllowlistResponse(e *entity.AllowlistEntry) dto.AllowlistEntryResponse {
	return dto.AllowlistEntryResponse{
		Email:     e.Email,
		Status:    e.Status,
		InvitedBy: e.InvitedBy,
		InvitedAt: e.InvitedAt,
	}
}

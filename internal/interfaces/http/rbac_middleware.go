package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/rbac"
)

// RequireGlobal devuelve un middleware que exige alguno de los roles con
// alcance global. Debe usarse DESPUÉS de AuthMiddleware.
func RequireGlobal(engine *rbac.Engine, roles ...entity.RoleCode) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, engine, rbac.Policy{
			RequiredRoles: roles,
			Scope:         rbac.ScopeGlobal,
		})
	}
}

// RequireTeam devuelve un middleware que exige alguno de los roles acotado al
// equipo del path param indicado (o global, que cubre todos los equipos).
func RequireTeam(engine *rbac.Engine, teamParam string, roles ...entity.RoleCode) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID := c.Params(teamParam)
		if teamID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "id de equipo requerido en la ruta",
			})
		}
		return authorize(c, engine, rbac.Policy{
			RequiredRoles: roles,
			Scope:         rbac.ScopeContextual,
			TeamID:        teamID,
		})
	}
}

// RequireTeamMember exige pertenencia al equipo del path param con cualquier
// rol (un ADMIN global también pasa), sin exigir un rol en particular.
func RequireTeamMember(engine *rbac.Engine, teamParam string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID := c.Params(teamParam)
		if teamID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "id de equipo requerido en la ruta",
			})
		}
		return authorize(c, engine, rbac.Policy{
			Scope:             rbac.ScopeContextual,
			TeamID:            teamID,
			RequireTeamMember: true,
		})
	}
}

// authorize evalúa la política contra el actor cargado por AuthMiddleware y
// traduce la decisión a HTTP: 401 sin identidad, 403 con el motivo (y los
// roles requeridos como diagnóstico), 503 si el almacén de roles falló.
func authorize(c *fiber.Ctx, engine *rbac.Engine, p rbac.Policy) error {
	decision, err := engine.Authorize(c.Context(), GetActor(c), p)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "RBAC_CHECK_FAILED", Message: "no se pudo verificar permisos, intente más tarde",
		})
	}
	if decision.Allowed {
		return c.Next()
	}

	switch decision.Reason {
	case rbac.ReasonUnauthenticated:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHENTICATED", Message: "se requiere autenticación",
		})
	case rbac.ReasonInactive:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "ACCOUNT_INACTIVE", Message: "cuenta inactiva",
		})
	case rbac.ReasonNoTeamAccess:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "NO_TEAM_ACCESS", Message: "sin acceso al equipo",
		})
	default:
		required := make([]string, len(decision.Required))
		for i, r := range decision.Required {
			required[i] = string(r)
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_ROLE", Message: "rol insuficiente", Required: required,
		})
	}
}

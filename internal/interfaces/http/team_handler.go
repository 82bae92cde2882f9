package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/application/team"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// TeamHandler maneja equipos y centros de costo.
type TeamHandler struct {
	uc *team.TeamUseCase
}

// NewTeamHandler construye el handler de equipos.
func NewTeamHandler(uc *team.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Create godoc
// @Summary      Crear equipo (el owner recibe MANAGER del equipo)
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTeamRequest  true  "name, owner_user_id"
// @Success      201   {object}  dto.TeamResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/teams [post]
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" || in.OwnerUserID == "" {
		return badRequest(c, "name y owner_user_id son requeridos")
	}
	t, err := h.uc.CreateTeam(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTeamResponse(t))
}

// List godoc
// @Summary      Listar equipos
// @Tags         teams
// @Produce      json
// @Success      200  {array}  dto.TeamResponse
// @Security     BearerAuth
// @Router       /api/teams [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	teams, err := h.uc.ListTeams(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(teams)
}

// GetByID godoc
// @Summary      Detalle de un equipo con sus centros de costo
// @Tags         teams
// @Produce      json
// @Param        teamId  path  string  true  "id del equipo"
// @Success      200  {object}  dto.TeamDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId} [get]
func (h *TeamHandler) GetByID(c *fiber.Ctx) error {
	detail, err := h.uc.GetTeam(c.Context(), c.Params("teamId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// Update godoc
// @Summary      Actualizar un equipo
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamId  path  string  true  "id del equipo"
// @Param        body    body  dto.UpdateTeamRequest  true  "cambios parciales"
// @Success      200     {object}  dto.TeamResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId} [put]
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	t, err := h.uc.UpdateTeam(c.Context(), c.Params("teamId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTeamResponse(t))
}

// Delete godoc
// @Summary      Eliminar un equipo
// @Tags         teams
// @Param        teamId  path  string  true  "id del equipo"
// @Success      204
// @Security     BearerAuth
// @Router       /api/teams/{teamId} [delete]
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteTeam(c.Context(), c.Params("teamId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateCostCenter godoc
// @Summary      Crear centro de costo en un equipo
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamId  path  string  true  "id del equipo"
// @Param        body    body  dto.CreateCostCenterRequest  true  "code, name"
// @Success      201     {object}  dto.CostCenterResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/cost-centers [post]
func (h *TeamHandler) CreateCostCenter(c *fiber.Ctx) error {
	var in dto.CreateCostCenterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Code == "" || in.Name == "" {
		return badRequest(c, "code y name son requeridos")
	}
	cc, err := h.uc.CreateCostCenter(c.Context(), c.Params("teamId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCostCenterResponse(cc))
}

// ListCostCenters godoc
// @Summary      Listar centros de costo de un equipo
// @Tags         teams
// @Produce      json
// @Param        teamId  path  string  true  "id del equipo"
// @Success      200  {array}  dto.CostCenterResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/cost-centers [get]
func (h *TeamHandler) ListCostCenters(c *fiber.Ctx) error {
	ccs, err := h.uc.ListCostCenters(c.Context(), c.Params("teamId"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CostCenterResponse, 0, len(ccs))
	for _, cc := range ccs {
		out = append(out, toCostCenterResponse(cc))
	}
	return c.JSON(out)
}

// UpdateCostCenter godoc
// @Summary      Actualizar un centro de costo
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamId  path  string  true  "id del equipo"
// @Param        ccId    path  string  true  "id del centro de costo"
// @Param        body    body  dto.UpdateCostCenterRequest  true  "cambios parciales"
// @Success      200     {object}  dto.CostCenterResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/cost-centers/{ccId} [put]
func (h *TeamHandler) UpdateCostCenter(c *fiber.Ctx) error {
	var in dto.UpdateCostCenterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	cc, err := h.uc.UpdateCostCenter(c.Context(), c.Params("ccId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCostCenterResponse(cc))
}

// SetDefaultCostCenter godoc
// @Summary      Fijar el centro de costo default del equipo
// @Tags         teams
// @Param        teamId  path  string  true  "id del equipo"
// @Param        ccId    path  string  true  "id del centro de costo"
// @Success      204
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/cost-centers/{ccId}/default [put]
func (h *TeamHandler) SetDefaultCostCenter(c *fiber.Ctx) error {
	if err := h.uc.SetDefaultCostCenter(c.Context(), c.Params("teamId"), c.Params("ccId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toTeamResponse(t *entity.Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:                  t.ID,
		Name:                t.Name,
		OwnerUserID:         t.OwnerUserID,
		CostCenterDefaultID: t.CostCenterDefaultID,
		CreatedAt:           t.CreatedAt,
	}
}

func toCostCenterResponse(cc *entity.CostCenter) dto.CostCenterResponse {
	return dto.CostCenterResponse{
		ID:     cc.ID,
		TeamID: cc.TeamID,
		Code:   cc.Code,
		Name:   cc.Name,
		Active: cc.Active,
	}
}

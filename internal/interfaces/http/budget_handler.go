package http

import (
	"github.com/gofiber/fiber/v2"

	appbudget "github.com/greengotts/greengotts-api/internal/application/budget"
	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// BudgetHandler maneja presupuestos, secciones e ítems. Las rutas van
// anidadas bajo el equipo para que el RBAC contextual tome el teamId del path.
type BudgetHandler struct {
	uc *appbudget.BudgetUseCase
}

// NewBudgetHandler construye el handler de presupuestos.
func NewBudgetHandler(uc *appbudget.BudgetUseCase) *BudgetHandler {
	return &BudgetHandler{uc: uc}
}

// budgetInTeam resuelve el presupuesto y verifica que pertenezca al equipo de
// la ruta; un id de otro equipo responde 404, nunca filtra existencia.
func (h *BudgetHandler) budgetInTeam(c *fiber.Ctx) (*entity.Budget, error) {
	b, err := h.uc.GetBudget(c.Context(), c.Params("budgetId"))
	if err != nil {
		return nil, err
	}
	if b.TeamID != c.Params("teamId") {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// Create godoc
// @Summary      Crear presupuesto para el equipo
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        teamId  path  string  true  "id del equipo"
// @Param        body    body  dto.CreateBudgetRequest  true  "title, fiscal_year"
// @Success      201     {object}  dto.BudgetResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBudgetRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b, err := h.uc.CreateBudget(c.Context(), c.Params("teamId"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appbudget.ToBudgetResponse(b))
}

// List godoc
// @Summary      Listar presupuestos del equipo
// @Tags         budgets
// @Produce      json
// @Param        teamId  path  string  true  "id del equipo"
// @Success      200  {array}  dto.BudgetResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets [get]
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	budgets, err := h.uc.ListBudgets(c.Context(), c.Params("teamId"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, appbudget.ToBudgetResponse(b))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un presupuesto
// @Tags         budgets
// @Produce      json
// @Param        teamId    path  string  true  "id del equipo"
// @Param        budgetId  path  string  true  "id del presupuesto"
// @Success      200  {object}  dto.BudgetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets/{budgetId} [get]
func (h *BudgetHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.budgetInTeam(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appbudget.ToBudgetResponse(b))
}

// Summary godoc
// @Summary      Resumen agregado del presupuesto
// @Description  Total USD, totales por tipo, distribución mensual combinada y
// @Description  monto diferido (ítems sin distribución).
// @Tags         budgets
// @Produce      json
// @Param        teamId    path  string  true  "id del equipo"
// @Param        budgetId  path  string  true  "id del presupuesto"
// @Success      200  {object}  dto.BudgetSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets/{budgetId}/summary [get]
func (h *BudgetHandler) Summary(c *fiber.Ctx) error {
	if _, err := h.budgetInTeam(c); err != nil {
		return respondError(c, err)
	}
	summary, err := h.uc.Summarize(c.Context(), c.Params("budgetId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appbudget.ToSummaryResponse(summary))
}

// CreateSection godoc
// @Summary      Crear sección en un presupuesto
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        teamId    path  string  true  "id del equipo"
// @Param        budgetId  path  string  true  "id del presupuesto"
// @Param        body      body  dto.CreateSectionRequest  true  "title, sort_order"
// @Success      201       {object}  dto.SectionResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets/{budgetId}/sections [post]
func (h *BudgetHandler) CreateSection(c *fiber.Ctx) error {
	if _, err := h.budgetInTeam(c); err != nil {
		return respondError(c, err)
	}
	var in dto.CreateSectionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	s, err := h.uc.CreateSection(c.Context(), c.Params("budgetId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appbudget.ToSectionResponse(s))
}

// ListSections godoc
// @Summary      Listar secciones de un presupuesto
// @Tags         budgets
// @Produce      json
// @Param        teamId    path  string  true  "id del equipo"
// @Param        budgetId  path  string  true  "id del presupuesto"
// @Success      200  {array}  dto.SectionResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets/{budgetId}/sections [get]
func (h *BudgetHandler) ListSections(c *fiber.Ctx) error {
	if _, err := h.budgetInTeam(c); err != nil {
		return respondError(c, err)
	}
	sections, err := h.uc.ListSections(c.Context(), c.Params("budgetId"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, appbudget.ToSectionResponse(s))
	}
	return c.JSON(out)
}

// CreateItem godoc
// @Summary      Crear ítem (convierte a USD y distribuye por meses)
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        teamId    path  string  true  "id del equipo"
// @Param        budgetId  path  string  true  "id del presupuesto"
// @Param        body      body  dto.CreateItemRequest  true  "ítem"
// @Success      201       {object}  dto.ItemResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse  "sin tasa fx aplicable"
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets/{budgetId}/items [post]
func (h *BudgetHandler) CreateItem(c *fiber.Ctx) error {
	if _, err := h.budgetInTeam(c); err != nil {
		return respondError(c, err)
	}
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.CreateItem(c.Context(), c.Params("budgetId"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appbudget.ToItemResponse(item))
}

// ListItems godoc
// @Summary      Listar ítems vigentes de un presupuesto
// @Tags         budgets
// @Produce      json
// @Param        teamId    path  string  true  "id del equipo"
// @Param        budgetId  path  string  true  "id del presupuesto"
// @Param        type      query  string  false  "filtro por tipo"
// @Param        status    query  string  false  "filtro por estado"
// @Param        cost_center_id  query  string  false  "filtro por centro de costo"
// @Param        month     query  string  false  "YYYY-MM-DD: ítems cuyo rango cubre el mes"
// @Success      200  {array}  dto.ItemResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets/{budgetId}/items [get]
func (h *BudgetHandler) ListItems(c *fiber.Ctx) error {
	if _, err := h.budgetInTeam(c); err != nil {
		return respondError(c, err)
	}
	var filters dto.ItemFiltersRequest
	if err := c.QueryParser(&filters); err != nil {
		return badRequest(c, "filtros inválidos")
	}
	items, err := h.uc.ListItems(c.Context(), c.Params("budgetId"), filters)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, appbudget.ToItemResponse(item))
	}
	return c.JSON(out)
}

// GetItem godoc
// @Summary      Detalle de un ítem (incluye soft-deleted)
// @Tags         budgets
// @Produce      json
// @Param        teamId    path  string  true  "id del equipo"
// @Param        budgetId  path  string  true  "id del presupuesto"
// @Param        itemId    path  string  true  "id del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets/{budgetId}/items/{itemId} [get]
func (h *BudgetHandler) GetItem(c *fiber.Ctx) error {
	if _, err := h.budgetInTeam(c); err != nil {
		return respondError(c, err)
	}
	item, err := h.uc.GetItem(c.Context(), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	if item.BudgetID != c.Params("budgetId") {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(appbudget.ToItemResponse(item))
}

// DeleteItem godoc
// @Summary      Soft delete de un ítem (la fila queda para auditoría)
// @Tags         budgets
// @Param        teamId    path  string  true  "id del equipo"
// @Param        budgetId  path  string  true  "id del presupuesto"
// @Param        itemId    path  string  true  "id del ítem"
// @Success      204
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets/{budgetId}/items/{itemId} [delete]
func (h *BudgetHandler) DeleteItem(c *fiber.Ctx) error {
	if _, err := h.budgetInTeam(c); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SoftDeleteItem(c.Context(), c.Params("itemId"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RestoreItem godoc
// @Summary      Restaurar un ítem soft-deleted
// @Tags         budgets
// @Param        teamId    path  string  true  "id del equipo"
// @Param        budgetId  path  string  true  "id del presupuesto"
// @Param        itemId    path  string  true  "id del ítem"
// @Success      204
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets/{budgetId}/items/{itemId}/restore [post]
func (h *BudgetHandler) RestoreItem(c *fiber.Ctx) error {
	if _, err := h.budgetInTeam(c); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.RestoreItem(c.Context(), c.Params("itemId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appbudget "github.com/greengotts/greengotts-api/internal/application/budget"
	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
	"github.com/greengotts/greengotts-api/internal/infrastructure/pdf"
)

// ReportHandler genera reportes descargables a partir del resumen de un
// presupuesto.
type ReportHandler struct {
	budgets *appbudget.BudgetUseCase
	teams   repository.TeamRepository
	pdfGen  *pdf.BudgetReportGenerator
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(budgets *appbudget.BudgetUseCase, teams repository.TeamRepository, pdfGen *pdf.BudgetReportGenerator) *ReportHandler {
	return &ReportHandler{budgets: budgets, teams: teams, pdfGen: pdfGen}
}

// BudgetSummaryPDF godoc
// @Summary      Descargar el resumen del presupuesto en PDF
// @Description  Totales en USD por tipo y por mes, con los montos congelados
// @Description  al snapshot de tasa de cada ítem.
// @Tags         reports
// @Produce      application/pdf
// @Param        teamId    path  string  true  "id del equipo"
// @Param        budgetId  path  string  true  "id del presupuesto"
// @Success      200  {file}  byte
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/teams/{teamId}/budgets/{budgetId}/report [get]
func (h *ReportHandler) BudgetSummaryPDF(c *fiber.Ctx) error {
	summary, err := h.budgets.Summarize(c.Context(), c.Params("budgetId"))
	if err != nil {
		return respondError(c, err)
	}
	if summary.Budget.TeamID != c.Params("teamId") {
		return respondError(c, domain.ErrNotFound)
	}
	team, err := h.teams.GetByID(c.Context(), summary.Budget.TeamID)
	if err != nil {
		return respondError(c, err)
	}
	if team == nil {
		return respondError(c, domain.ErrNotFound)
	}

	doc, err := h.pdfGen.GenerateBudgetSummaryPDF(c.Context(), summary, team)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="presupuesto_%d_%s.pdf"`, summary.Budget.FiscalYear, summary.Budget.ID))
	return c.Send(doc)
}

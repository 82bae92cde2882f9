package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greengotts/greengotts-api/internal/application/admin"
	"github.com/greengotts/greengotts-api/internal/application/auth"
	appbudget "github.com/greengotts/greengotts-api/internal/application/budget"
	"github.com/greengotts/greengotts-api/internal/application/fxrates"
	"github.com/greengotts/greengotts-api/internal/application/team"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/rbac"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
	"github.com/greengotts/greengotts-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	AdminUC   *admin.AdminUseCase
	TeamUC    *team.TeamUseCase
	BudgetUC  *appbudget.BudgetUseCase
	FxUC      *fxrates.FxUseCase
	Users     repository.UserRepository
	Teams     repository.TeamRepository
	Engine    *rbac.Engine
	PDFGen    *pdf.BudgetReportGenerator
	JWTSecret string
}

// Router registra las rutas de la API. Todo lo que no es login/registro pasa
// por AuthMiddleware, que recarga el usuario desde la base en cada request:
// desactivaciones y cambios de rol aplican de inmediato, sin esperar a que
// venza el token.
//
// Los guards RBAC van por ruta y no por grupo: el middleware de grupo en
// fiber aplica por prefijo, y rutas de lectura y escritura comparten prefijo
// con políticas distintas.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Get("/allowlist", authHandler.CheckAllowlist)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/login/external", authHandler.LoginExternal)

	// Rutas protegidas (requieren Bearer Token y cuenta activa)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Users))

	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/password", authHandler.ChangePassword)

	// Guards reutilizados en varias rutas
	adminOnly := RequireGlobal(deps.Engine, entity.RoleAdmin)
	teamMember := RequireTeamMember(deps.Engine, "teamId")
	teamManager := RequireTeam(deps.Engine, "teamId", entity.RoleManager, entity.RoleAdmin)
	teamWriter := RequireTeam(deps.Engine, "teamId", entity.RoleContributor, entity.RoleManager, entity.RoleAdmin)

	// Admin (solo ADMIN global)
	adminGroup := protected.Group("/admin", adminOnly)
	adminHandler := NewAdminHandler(deps.AdminUC)
	adminGroup.Get("/allowlist", adminHandler.ListAllowlist)
	adminGroup.Post("/allowlist", adminHandler.AddAllowlistEntry)
	adminGroup.Get("/allowlist/pending/count", adminHandler.PendingCount)
	adminGroup.Put("/allowlist/:email", adminHandler.UpdateAllowlistStatus)
	adminGroup.Delete("/allowlist/:email", adminHandler.DeleteAllowlistEntry)
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Post("/users/:id/roles", adminHandler.GrantRole)
	adminGroup.Delete("/users/:id/roles", adminHandler.RevokeRole)

	// Teams: crear y borrar equipos es global; leer y administrar centros de
	// costo es contextual al equipo de la ruta.
	teamHandler := NewTeamHandler(deps.TeamUC)
	protected.Post("/teams", adminOnly, teamHandler.Create)
	protected.Get("/teams", adminOnly, teamHandler.List)
	protected.Delete("/teams/:teamId", adminOnly, teamHandler.Delete)
	protected.Get("/teams/:teamId", teamManager, teamHandler.GetByID)
	protected.Put("/teams/:teamId", teamManager, teamHandler.Update)
	protected.Get("/teams/:teamId/cost-centers", teamManager, teamHandler.ListCostCenters)
	protected.Post("/teams/:teamId/cost-centers", teamManager, teamHandler.CreateCostCenter)
	protected.Put("/teams/:teamId/cost-centers/:ccId", teamManager, teamHandler.UpdateCostCenter)
	protected.Put("/teams/:teamId/cost-centers/:ccId/default", teamManager, teamHandler.SetDefaultCostCenter)

	// Budgets: lectura para cualquier miembro del equipo, escritura desde
	// CONTRIBUTOR hacia arriba.
	budgetHandler := NewBudgetHandler(deps.BudgetUC)
	budgets := protected.Group("/teams/:teamId/budgets")
	budgets.Post("/", teamWriter, budgetHandler.Create)
	budgets.Get("/", teamMember, budgetHandler.List)
	budgets.Get("/:budgetId", teamMember, budgetHandler.GetByID)
	budgets.Get("/:budgetId/summary", teamMember, budgetHandler.Summary)
	budgets.Post("/:budgetId/sections", teamWriter, budgetHandler.CreateSection)
	budgets.Get("/:budgetId/sections", teamMember, budgetHandler.ListSections)
	budgets.Post("/:budgetId/items", teamWriter, budgetHandler.CreateItem)
	budgets.Get("/:budgetId/items", teamMember, budgetHandler.ListItems)
	budgets.Get("/:budgetId/items/:itemId", teamMember, budgetHandler.GetItem)
	budgets.Delete("/:budgetId/items/:itemId", teamWriter, budgetHandler.DeleteItem)
	budgets.Post("/:budgetId/items/:itemId/restore", teamWriter, budgetHandler.RestoreItem)

	// Reportes (lectura de miembro)
	reportHandler := NewReportHandler(deps.BudgetUC, deps.Teams, deps.PDFGen)
	budgets.Get("/:budgetId/report", teamMember, reportHandler.BudgetSummaryPDF)

	// FX: publicar tasas es de FINANCE o ADMIN global; consultar, de cualquier
	// usuario autenticado.
	fxHandler := NewFxHandler(deps.FxUC)
	fxGroup := protected.Group("/fx")
	fxGroup.Post("/rates", RequireGlobal(deps.Engine, entity.RoleFinance, entity.RoleAdmin), fxHandler.CreateRate)
	fxGroup.Get("/rates", fxHandler.ListRates)
	fxGroup.Get("/pairs", fxHandler.ListPairs)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/greengotts/greengotts-api/internal/application/admin"
	"github.com/greengotts/greengotts-api/internal/application/auth"
	appbudget "github.com/greengotts/greengotts-api/internal/application/budget"
	"github.com/greengotts/greengotts-api/internal/application/fxrates"
	"github.com/greengotts/greengotts-api/internal/application/team"
	"github.com/greengotts/greengotts-api/internal/domain/budgeting"
	"github.com/greengotts/greengotts-api/internal/domain/fx"
	"github.com/greengotts/greengotts-api/internal/domain/rbac"
	infrapdf "github.com/greengotts/greengotts-api/internal/infrastructure/pdf"
	"github.com/greengotts/greengotts-api/internal/infrastructure/postgres"
	httpRouter "github.com/greengotts/greengotts-api/internal/interfaces/http"
	"github.com/greengotts/greengotts-api/pkg/config"
	"github.com/greengotts/greengotts-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Migraciones sobre una conexión corta; el pool queda aparte.
	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	allowlistRepo := postgres.NewAllowlistRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	fxRepo := postgres.NewFxRateRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// El motor RBAC y el de montos son dominio puro: leen por interfaces,
	// nunca escriben.
	engine := rbac.NewEngine(roleRepo)
	amountEngine := budgeting.NewAmountEngine(fx.NewResolver(fxRepo))

	authUC := auth.NewAuthUseCase(userRepo, allowlistRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	adminUC := admin.NewAdminUseCase(userRepo, roleRepo, allowlistRepo, txRunner)
	teamUC := team.NewTeamUseCase(teamRepo, userRepo, txRunner)
	budgetUC := appbudget.NewBudgetUseCase(budgetRepo, teamRepo, amountEngine)
	fxUC := fxrates.NewFxUseCase(fxRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Greengotts API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		AdminUC:   adminUC,
		TeamUC:    teamUC,
		BudgetUC:  budgetUC,
		FxUC:      fxUC,
		Users:     userRepo,
		Teams:     teamRepo,
		Engine:    engine,
		PDFGen:    infrapdf.NewBudgetReportGenerator(),
		JWTSecret: cfg.JWT.Secret,
	})

	httpLog := log.Component("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

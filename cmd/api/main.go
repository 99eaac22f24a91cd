package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/genekit/inventory-api/internal/application/analytics"
	"github.com/genekit/inventory-api/internal/application/auth"
	"github.com/genekit/inventory-api/internal/application/inventory"
	"github.com/genekit/inventory-api/internal/application/usecase"
	infracache "github.com/genekit/inventory-api/internal/infrastructure/cache"
	"github.com/genekit/inventory-api/internal/infrastructure/mail"
	"github.com/genekit/inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/genekit/inventory-api/internal/interfaces/http"
	"github.com/genekit/inventory-api/pkg/config"
	"github.com/genekit/inventory-api/pkg/logger"
)

// viewCache une los dos puertos que implementa el adaptador de Redis.
type viewCache interface {
	appanalytics.StatsCache
	inventory.ViewInvalidator
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de vistas: opcional, la app funciona sin Redis.
	var views viewCache = infracache.NopViewCache{}
	if cfg.Cache.Addr != "" {
		redisCache, err := infracache.New(ctx, cfg.Cache.Addr, time.Duration(cfg.Cache.TTLSeconds)*time.Second, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		views = redisCache
	}

	profileRepo := postgres.NewProfileRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// El mailer de invitaciones llega inyectado: el camino privilegiado queda
	// explícito en el wiring, nunca como estado global.
	inviteMailer := mail.NewLogMailer(log)

	authUC := auth.NewUseCase(profileRepo, orgRepo, inviteMailer, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Invite.SiteURL)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, views)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, supplierRepo, views, log)
	movementHistoryUC := inventory.NewMovementHistoryUseCase(movementRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, movementRepo, views)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		ProductUC:         productUC,
		CategoryUC:        categoryUC,
		SupplierUC:        supplierUC,
		RegisterMovement:  registerMovementUC,
		MovementHistory:   movementHistoryUC,
		DashboardUC:       dashboardUC,
		ProfileRepo:       profileRepo,
		JWTSecret:         cfg.JWT.Secret,
		MultiCountryEmail: cfg.Invite.MultiCountryEmail,
		Log:               log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
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

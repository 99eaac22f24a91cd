package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/genekit/inventory-api/internal/application/analytics"
	"github.com/genekit/inventory-api/internal/application/auth"
	"github.com/genekit/inventory-api/internal/application/inventory"
	"github.com/genekit/inventory-api/internal/application/usecase"
	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
	"github.com/genekit/inventory-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.UseCase
	ProductUC         *usecase.ProductUseCase
	CategoryUC        *usecase.CategoryUseCase
	SupplierUC        *usecase.SupplierUseCase
	RegisterMovement  *inventory.RegisterMovementUseCase
	MovementHistory   *inventory.MovementHistoryUseCase
	DashboardUC       *analytics.DashboardUseCase
	ProfileRepo       repository.ProfileRepository
	JWTSecret         string
	MultiCountryEmail string
	Log               *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/confirm", authHandler.ConfirmInvite)

	// Rutas protegidas: Bearer Token + RequestContext resuelto una vez por petición
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret),
		RequestContextMiddleware(deps.ProfileRepo, deps.MultiCountryEmail, deps.Log),
	)

	protected.Post("/auth/update-password", authHandler.UpdatePassword)
	protected.Get("/auth/me", authHandler.Me)

	// Users (protegido; la invitación exige ADMIN)
	userHandler := NewUserHandler(deps.AuthUC, deps.Log)
	protected.Get("/users", userHandler.List)
	protected.Post("/users/invite", RequireRole(entity.RoleAdmin), userHandler.Invite)

	// Products (protegido)
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	protected.Post("/products", productHandler.Create)
	protected.Get("/products", productHandler.List)
	protected.Get("/products/:id", productHandler.GetByID)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)

	// Categories (protegido)
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Log)
	protected.Post("/categories", categoryHandler.Create)
	protected.Get("/categories", categoryHandler.List)

	// Suppliers (protegido)
	supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.Log)
	protected.Post("/suppliers", supplierHandler.Create)
	protected.Get("/suppliers", supplierHandler.List)
	protected.Put("/suppliers/:id", supplierHandler.Update)
	protected.Delete("/suppliers/:id", supplierHandler.Delete)

	// Movements (protegido)
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementHistory, deps.Log)
	protected.Post("/movements", movementHandler.Register)
	protected.Get("/movements", movementHandler.History)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	protected.Get("/dashboard/stats", dashboardHandler.Stats)
	protected.Get("/dashboard/low-stock", dashboardHandler.LowStockAlerts)
	protected.Get("/dashboard/recent-activity", dashboardHandler.RecentActivity)
}

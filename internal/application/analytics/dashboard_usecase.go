package analytics

import (
	"context"
	"time"

	"github.com/genekit/inventory-api/internal/application/appctx"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/domain/repository"
)

// StatsCache caché de lectura para las métricas del tablero. Un fallo de caché
// nunca es un error del tablero: se recalcula contra la base.
type StatsCache interface {
	GetStats(ctx context.Context, organizationID, countryCode string) (*dto.DashboardStats, bool)
	SetStats(ctx context.Context, organizationID, countryCode string, stats *dto.DashboardStats)
}

// DashboardUseCase métricas y alertas del tablero, con alcance org+país.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
	movementRepo  repository.MovementRepository
	cache         StatsCache
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository, movementRepo repository.MovementRepository, cache StatsCache) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo, movementRepo: movementRepo, cache: cache}
}

// Stats devuelve las métricas del tablero: total de productos, productos con
// stock bajo, movimientos de hoy y proveedor con más entradas del último mes.
// Lectura read-through del caché; el registro de movimientos lo invalida.
func (uc *DashboardUseCase) Stats(ctx context.Context, rc appctx.RequestContext) (*dto.DashboardStats, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if cached, ok := uc.cache.GetStats(ctx, rc.OrganizationID, rc.CountryCode); ok {
		return cached, nil
	}

	totalProducts, err := uc.dashboardRepo.CountProducts(rc.OrganizationID, rc.CountryCode)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.dashboardRepo.CountLowStock(rc.OrganizationID, rc.CountryCode)
	if err != nil {
		return nil, err
	}
	// Medianoche local, no UTC: "hoy" es el día del servidor.
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	movementsToday, err := uc.movementRepo.CountSince(rc.OrganizationID, rc.CountryCode, startOfDay)
	if err != nil {
		return nil, err
	}
	topSupplier, err := uc.dashboardRepo.TopSupplier(rc.OrganizationID, rc.CountryCode)
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardStats{
		TotalProducts:  totalProducts,
		LowStockCount:  lowStock,
		TopSupplier:    topSupplier,
		MovementsToday: movementsToday,
	}
	uc.cache.SetStats(ctx, rc.OrganizationID, rc.CountryCode, stats)
	return stats, nil
}

// LowStockAlerts productos en o por debajo de su mínimo, con nivel de alerta:
// critical con stock en cero, warning en otro caso.
func (uc *DashboardUseCase) LowStockAlerts(ctx context.Context, rc appctx.RequestContext) ([]*dto.LowStockAlert, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	products, err := uc.dashboardRepo.ListLowStock(rc.OrganizationID, rc.CountryCode)
	if err != nil {
		return nil, err
	}
	alerts := make([]*dto.LowStockAlert, 0, len(products))
	for _, p := range products {
		level := "warning"
		if p.CurrentStock == 0 {
			level = "critical"
		}
		alerts = append(alerts, &dto.LowStockAlert{Product: *dto.ToProductResponse(p), AlertLevel: level})
	}
	return alerts, nil
}

// RecentActivity últimos cinco movimientos con producto y autor resueltos.
func (uc *DashboardUseCase) RecentActivity(ctx context.Context, rc appctx.RequestContext) ([]*dto.MovementHistoryItem, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	rows, err := uc.movementRepo.ListByOrgAndCountry(rc.OrganizationID, rc.CountryCode, 5, 0)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.MovementHistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.ToMovementHistoryItem(row))
	}
	return items, nil
}

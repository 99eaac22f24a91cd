package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/genekit/inventory-api/internal/application/analytics"
	"github.com/genekit/inventory-api/pkg/logger"
)

// DashboardHandler métricas y alertas del tablero (protegido).
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Stats godoc
// @Summary      Métricas del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStats
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	stats, err := h.uc.Stats(c.Context(), rc)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(stats)
}

// LowStockAlerts godoc
// @Summary      Alertas de stock bajo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockAlert
// @Router       /api/dashboard/low-stock [get]
func (h *DashboardHandler) LowStockAlerts(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	alerts, err := h.uc.LowStockAlerts(c.Context(), rc)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": alerts})
}

// RecentActivity godoc
// @Summary      Actividad reciente (últimos cinco movimientos)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementHistoryItem
// @Router       /api/dashboard/recent-activity [get]
func (h *DashboardHandler) RecentActivity(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	items, err := h.uc.RecentActivity(c.Context(), rc)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "activity": items})
}

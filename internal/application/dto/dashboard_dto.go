package dto

// LowStockAlert producto en o por debajo de su stock mínimo.
// AlertLevel: "critical" si el stock es cero, "warning" en otro caso.
type LowStockAlert struct {
	Product    ProductResponse `json:"product"`
	AlertLevel string          `json:"alert_level"`
}

// DashboardStats métricas del tablero.
type DashboardStats struct {
	TotalProducts  int     `json:"total_products"`
	LowStockCount  int     `json:"low_stock_count"`
	TopSupplier    *string `json:"top_supplier"`
	MovementsToday int     `json:"movements_today"`
}

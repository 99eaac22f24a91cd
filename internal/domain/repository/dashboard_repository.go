package repository

import "github.com/genekit/inventory-api/internal/domain/entity"

// DashboardRepository consultas agregadas para el tablero.
type DashboardRepository interface {
	CountProducts(organizationID, countryCode string) (int, error)
	CountLowStock(organizationID, countryCode string) (int, error)
	// ListLowStock productos en o por debajo de su stock mínimo, los más bajos primero.
	ListLowStock(organizationID, countryCode string) ([]*entity.Product, error)
	// TopSupplier devuelve el proveedor con más unidades recibidas en los
	// últimos treinta días, o nil si no hubo entradas con proveedor.
	TopSupplier(organizationID, countryCode string) (*string, error)
}

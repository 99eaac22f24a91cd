package repository

import "github.com/genekit/inventory-api/internal/domain/entity"

// ProductRepository puerto de persistencia de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByOrgAndSKU busca por SKU dentro de la organización (unicidad de SKU por tenant).
	GetByOrgAndSKU(organizationID, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock fija el nuevo contador de stock (solo desde la tx de movimientos).
	UpdateStock(id string, newStock int) error
	Update(product *entity.Product) error
	Delete(id string) error
	ListByOrgAndCountry(organizationID, countryCode string, limit, offset int) ([]*entity.Product, error)
}

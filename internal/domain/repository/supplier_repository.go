package repository

import "github.com/genekit/inventory-api/internal/domain/entity"

// SupplierRepository puerto de persistencia de proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
	ListByOrg(organizationID string) ([]*entity.Supplier, error)
}

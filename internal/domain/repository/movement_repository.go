package repository

import (
	"time"

	"github.com/genekit/inventory-api/internal/domain/entity"
)

// MovementWithRefs es un movimiento enriquecido con los datos que el historial
// muestra junto a él (nombre/SKU del producto, email del autor, proveedor).
// El join se hace en SQL, no en memoria.
type MovementWithRefs struct {
	entity.Movement
	ProductName    string
	ProductSKU     string
	CreatedByEmail *string
	SupplierName   *string
}

// MovementRepository puerto de persistencia de movimientos (append-only).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByOrgAndCountry(organizationID, countryCode string, limit, offset int) ([]*MovementWithRefs, error)
	// CountSince cuenta movimientos de la organización/país desde un instante (métrica "movimientos de hoy").
	CountSince(organizationID, countryCode string, since time.Time) (int, error)
}

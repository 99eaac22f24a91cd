package inventory

import (
	"context"

	"github.com/genekit/inventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La lectura del stock, su actualización y el
// insert del movimiento ocurren en la misma transacción: no hay ventana entre
// la verificación de suficiencia y la escritura.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// ViewInvalidator señala a la capa de presentación que las vistas cacheadas
// (inventario y tablero) quedaron obsoletas tras una escritura.
type ViewInvalidator interface {
	InvalidateInventoryViews(ctx context.Context, organizationID, countryCode string)
}

// Package stock contiene la transición de estado del contador de stock.
// La aritmética vive en una función pura invocada dentro de la misma
// transacción que inserta el movimiento, no en un trigger de base de datos,
// de modo que el invariante stock >= 0 queda en código testeable.
package stock

import (
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
)

// Apply calcula el nuevo stock de un producto al aplicar un movimiento.
// Entrada suma, Salida resta. Una Salida que dejaría el stock negativo
// devuelve *domain.InsufficientStockError con las cantidades concretas.
func Apply(current int, movementType string, quantity int) (int, error) {
	if quantity <= 0 {
		return current, domain.ErrInvalidInput
	}
	switch movementType {
	case entity.MovementTypeEntrada:
		return current + quantity, nil
	case entity.MovementTypeSalida:
		if current < quantity {
			return current, &domain.InsufficientStockError{Current: current, Requested: quantity}
		}
		return current - quantity, nil
	default:
		return current, domain.ErrInvalidInput
	}
}

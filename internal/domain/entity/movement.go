package entity

import "time"

// Tipos de movimiento de stock. Los valores en español son los que persiste y muestra la UI.
const (
	MovementTypeEntrada = "Entrada" // entrada de kits al inventario
	MovementTypeSalida  = "Salida"  // salida de kits del inventario
)

// ValidMovementType indica si s es un tipo de movimiento conocido.
func ValidMovementType(s string) bool {
	return s == MovementTypeEntrada || s == MovementTypeSalida
}

// Movement es un registro inmutable de un cambio de stock (append-only).
// Nunca se actualiza ni se elimina: el historial de movimientos es la fuente
// de verdad del stock.
type Movement struct {
	ID             string
	ProductID      string
	Type           string
	Quantity       int
	LotNumber      *string // solo con sentido en entradas
	ExpirationDate *string // YYYY-MM-DD, solo con sentido en entradas
	SupplierID     *string // solo con sentido en entradas
	Recipient      *string // solo con sentido en salidas
	Notes          *string
	OrganizationID string
	CountryCode    string
	CreatedBy      string
	CreatedAt      time.Time
}

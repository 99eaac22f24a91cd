package entity

import "time"

// Supplier es un proveedor de kits, referenciado opcionalmente por las entradas.
type Supplier struct {
	ID             string
	Name           string
	ContactEmail   *string
	Phone          *string
	OrganizationID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

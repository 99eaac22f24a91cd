package entity

import "time"

// Organization es el tenant: todos los datos de inventario viven particionados por organización.
type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

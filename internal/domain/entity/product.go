package entity

import "time"

// Product es un kit de prueba genética en catálogo.
// CurrentStock solo se muta dentro de la transacción de registro de movimiento;
// el invariante CurrentStock >= 0 lo garantiza stock.Apply.
type Product struct {
	ID             string
	Name           string
	SKU            string
	Description    *string
	CurrentStock   int
	MinStock       int
	CategoryID     int64
	OrganizationID string
	CountryCode    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LowStock indica si el producto está en o por debajo de su stock mínimo.
func (p *Product) LowStock() bool {
	return p.CurrentStock <= p.MinStock
}

package dto

import (
	"time"

	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
)

// RegisterMovementRequest body para POST /api/movements.
// Todos los campos llegan como texto, tal como los envía el formulario;
// la coerción de quantity a entero la hace la validación.
type RegisterMovementRequest struct {
	ProductID      string `json:"product_id"`
	Type           string `json:"type"` // "Entrada" | "Salida"
	Quantity       string `json:"quantity"`
	LotNumber      string `json:"lot_number,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"` // YYYY-MM-DD
	SupplierID     string `json:"supplier_id,omitempty"`
	Recipient      string `json:"recipient,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// MovementResponse representación JSON de un movimiento persistido.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	LotNumber      *string   `json:"lot_number,omitempty"`
	ExpirationDate *string   `json:"expiration_date,omitempty"`
	SupplierID     *string   `json:"supplier_id,omitempty"`
	Recipient      *string   `json:"recipient,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToMovementResponse convierte la entidad al DTO de respuesta.
func ToMovementResponse(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		LotNumber:      m.LotNumber,
		ExpirationDate: m.ExpirationDate,
		SupplierID:     m.SupplierID,
		Recipient:      m.Recipient,
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// MovementHistoryItem fila del historial: movimiento más referencias resueltas en SQL.
type MovementHistoryItem struct {
	MovementResponse
	ProductName    string  `json:"product_name"`
	ProductSKU     string  `json:"product_sku"`
	CreatedByEmail *string `json:"created_by_email,omitempty"`
	SupplierName   *string `json:"supplier_name,omitempty"`
}

// ToMovementHistoryItem convierte la fila enriquecida del repositorio.
func ToMovementHistoryItem(m *repository.MovementWithRefs) *MovementHistoryItem {
	if m == nil {
		return nil
	}
	return &MovementHistoryItem{
		MovementResponse: *ToMovementResponse(&m.Movement),
		ProductName:      m.ProductName,
		ProductSKU:       m.ProductSKU,
		CreatedByEmail:   m.CreatedByEmail,
		SupplierName:     m.SupplierName,
	}
}

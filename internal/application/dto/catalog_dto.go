package dto

import (
	"time"

	"github.com/genekit/inventory-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products y PUT /api/products/:id.
type CreateProductRequest struct {
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Description string `json:"description,omitempty"`
	MinStock    int    `json:"min_stock"`
	CategoryID  int64  `json:"category_id"`
}

// ProductResponse representación JSON de un producto.
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Description  *string   `json:"description,omitempty"`
	CurrentStock int       `json:"current_stock"`
	MinStock     int       `json:"min_stock"`
	CategoryID   int64     `json:"category_id"`
	CountryCode  string    `json:"country_code"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToProductResponse convierte la entidad al DTO de respuesta.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		CategoryID:   p.CategoryID,
		CountryCode:  p.CountryCode,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"` // hex #RGB o #RRGGBB
}

// CategoryResponse representación JSON de una categoría.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCategoryResponse convierte la entidad al DTO de respuesta.
func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{ID: c.ID, Name: c.Name, Color: c.Color, CreatedAt: c.CreatedAt}
}

// CreateSupplierRequest body para POST /api/suppliers y PUT /api/suppliers/:id.
type CreateSupplierRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// SupplierResponse representación JSON de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToSupplierResponse convierte la entidad al DTO de respuesta.
func ToSupplierResponse(s *entity.Supplier) *SupplierResponse {
	if s == nil {
		return nil
	}
	return &SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		Phone:        s.Phone,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas del tablero sobre PostgreSQL.
// Los filtros de stock bajo y el proveedor top se resuelven en SQL, no en memoria.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// CountProducts total de productos de la organización y país.
func (r *DashboardRepo) CountProducts(organizationID, countryCode string) (int, error) {
	var count int
	err := r.pool.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE organization_id = $1 AND country_code = $2`,
		organizationID, countryCode,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// CountLowStock productos en o por debajo de su stock mínimo.
func (r *DashboardRepo) CountLowStock(organizationID, countryCode string) (int, error) {
	var count int
	err := r.pool.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE organization_id = $1 AND country_code = $2 AND current_stock <= min_stock`,
		organizationID, countryCode,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return count, nil
}

// ListLowStock productos con stock bajo, los más bajos primero.
func (r *DashboardRepo) ListLowStock(organizationID, countryCode string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE organization_id = $1 AND country_code = $2 AND current_stock <= min_stock
		ORDER BY current_stock ASC`
	rows, err := r.pool.Query(context.Background(), query, organizationID, countryCode)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Description, &p.CurrentStock, &p.MinStock,
			&p.CategoryID, &p.OrganizationID, &p.CountryCode, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// TopSupplier proveedor con más unidades recibidas en los últimos treinta días.
func (r *DashboardRepo) TopSupplier(organizationID, countryCode string) (*string, error) {
	query := `
		SELECT s.name
		FROM movements m
		JOIN suppliers s ON s.id = m.supplier_id
		WHERE m.organization_id = $1
		  AND m.country_code = $2
		  AND m.type = 'Entrada'
		  AND m.supplier_id IS NOT NULL
		  AND m.created_at >= now() - interval '30 days'
		GROUP BY s.name
		ORDER BY sum(m.quantity) DESC
		LIMIT 1`
	var name string
	err := r.pool.QueryRow(context.Background(), query, organizationID, countryCode).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("top supplier: %w", err)
	}
	return &name, nil
}

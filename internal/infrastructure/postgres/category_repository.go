package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

// Create persiste una categoría; el ID lo asigna la secuencia.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (name, color, organization_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.pool.QueryRow(context.Background(), query,
		category.Name, category.Color, category.OrganizationID, category.CreatedAt,
	).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) scanOne(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.OrganizationID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id int64) (*entity.Category, error) {
	query := `SELECT id, name, color, organization_id, created_at FROM categories WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id))
}

// GetByOrgAndName obtiene una categoría por organización y nombre.
func (r *CategoryRepo) GetByOrgAndName(organizationID, name string) (*entity.Category, error) {
	query := `SELECT id, name, color, organization_id, created_at FROM categories WHERE organization_id = $1 AND name = $2`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, organizationID, name))
}

// ListByOrg lista las categorías de una organización.
func (r *CategoryRepo) ListByOrg(organizationID string) ([]*entity.Category, error) {
	query := `SELECT id, name, color, organization_id, created_at FROM categories WHERE organization_id = $1 ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.OrganizationID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

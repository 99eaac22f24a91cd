package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla movements es append-only: no hay Update ni Delete.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, type, quantity, lot_number, expiration_date, supplier_id, recipient, notes, organization_id, country_code, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.LotNumber, movement.ExpirationDate, movement.SupplierID,
		movement.Recipient, movement.Notes, movement.OrganizationID,
		movement.CountryCode, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByOrgAndCountry historial paginado, más reciente primero, con producto,
// autor y proveedor resueltos en el mismo query.
func (r *MovementRepo) ListByOrgAndCountry(organizationID, countryCode string, limit, offset int) ([]*repository.MovementWithRefs, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.lot_number, m.expiration_date,
		       m.supplier_id, m.recipient, m.notes, m.organization_id, m.country_code,
		       m.created_by, m.created_at,
		       p.name, p.sku, pr.email, s.name
		FROM movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN profiles pr ON pr.id = m.created_by
		LEFT JOIN suppliers s ON s.id = m.supplier_id
		WHERE m.organization_id = $1 AND m.country_code = $2
		ORDER BY m.created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, organizationID, countryCode, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*repository.MovementWithRefs
	for rows.Next() {
		var m repository.MovementWithRefs
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.LotNumber, &m.ExpirationDate,
			&m.SupplierID, &m.Recipient, &m.Notes, &m.OrganizationID, &m.CountryCode,
			&m.CreatedBy, &m.CreatedAt,
			&m.ProductName, &m.ProductSKU, &m.CreatedByEmail, &m.SupplierName,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountSince cuenta movimientos de la organización/país desde un instante.
func (r *MovementRepo) CountSince(organizationID, countryCode string, since time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM movements WHERE organization_id = $1 AND country_code = $2 AND created_at >= $3`,
		organizationID, countryCode, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

package repository

import "github.com/genekit/inventory-api/internal/domain/entity"

// CategoryRepository puerto de persistencia de categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByOrgAndName(organizationID, name string) (*entity.Category, error)
	GetByID(id int64) (*entity.Category, error)
	ListByOrg(organizationID string) ([]*entity.Category, error)
}

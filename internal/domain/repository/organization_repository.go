package repository

import "github.com/genekit/inventory-api/internal/domain/entity"

// OrganizationRepository puerto de persistencia de organizaciones (tenants).
type OrganizationRepository interface {
	Create(org *entity.Organization) error
	GetByID(id string) (*entity.Organization, error)
}

package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/genekit/inventory-api/internal/application/appctx"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

func validateSupplierRequest(in dto.CreateSupplierRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrInvalidInput // el nombre es requerido
	}
	if in.ContactEmail != "" {
		if _, err := mail.ParseAddress(in.ContactEmail); err != nil {
			return domain.ErrInvalidInput // email inválido
		}
	}
	return nil
}

// Create crea un proveedor de la organización del actor.
func (uc *SupplierUseCase) Create(ctx context.Context, rc appctx.RequestContext, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if err := validateSupplierRequest(in); err != nil {
		return nil, err
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:             uuid.New().String(),
		Name:           in.Name,
		ContactEmail:   optionalText(in.ContactEmail),
		Phone:          optionalText(in.Phone),
		OrganizationID: rc.OrganizationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Update actualiza un proveedor de la organización.
func (uc *SupplierUseCase) Update(ctx context.Context, rc appctx.RequestContext, supplierID string, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if err := validateSupplierRequest(in); err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.OrganizationID != rc.OrganizationID {
		return nil, domain.ErrNotFound
	}
	supplier.Name = in.Name
	supplier.ContactEmail = optionalText(in.ContactEmail)
	supplier.Phone = optionalText(in.Phone)
	supplier.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete elimina un proveedor de la organización.
func (uc *SupplierUseCase) Delete(ctx context.Context, rc appctx.RequestContext, supplierID string) error {
	if err := rc.Validate(); err != nil {
		return err
	}
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return err
	}
	if supplier == nil || supplier.OrganizationID != rc.OrganizationID {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.Delete(supplier.ID)
}

// List lista los proveedores de la organización del actor.
func (uc *SupplierUseCase) List(ctx context.Context, rc appctx.RequestContext) ([]*entity.Supplier, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return uc.supplierRepo.ListByOrg(rc.OrganizationID)
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/genekit/inventory-api/internal/application/appctx"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/application/inventory"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos, siempre con alcance de organización y país.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	views        inventory.ViewInvalidator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, views inventory.ViewInvalidator) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo, views: views}
}

func validateProductRequest(in dto.CreateProductRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrInvalidInput // el nombre es requerido
	}
	if strings.TrimSpace(in.SKU) == "" {
		return domain.ErrInvalidInput // el SKU es requerido
	}
	if in.MinStock < 0 {
		return domain.ErrInvalidInput // el stock mínimo debe ser 0 o mayor
	}
	if in.CategoryID <= 0 {
		return domain.ErrInvalidInput // la categoría es requerida
	}
	return nil
}

// Create crea un producto con stock inicial 0. El SKU debe ser único en la
// organización y la categoría debe pertenecerle.
func (uc *ProductUseCase) Create(ctx context.Context, rc appctx.RequestContext, in dto.CreateProductRequest) (*entity.Product, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if err := validateProductRequest(in); err != nil {
		return nil, err
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || category.OrganizationID != rc.OrganizationID {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.productRepo.GetByOrgAndSKU(rc.OrganizationID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate // ya existe un producto con este SKU en la organización
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		SKU:            in.SKU,
		Description:    optionalText(in.Description),
		CurrentStock:   0,
		MinStock:       in.MinStock,
		CategoryID:     in.CategoryID,
		OrganizationID: rc.OrganizationID,
		CountryCode:    rc.CountryCode,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	uc.views.InvalidateInventoryViews(ctx, rc.OrganizationID, rc.CountryCode)
	return product, nil
}

// Update actualiza un producto de la organización. Si el SKU cambia, verifica
// que ningún otro producto de la organización lo use. No toca CurrentStock.
func (uc *ProductUseCase) Update(ctx context.Context, rc appctx.RequestContext, productID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if err := validateProductRequest(in); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !rc.CanSee(product.OrganizationID, product.CountryCode) {
		return nil, domain.ErrProductNotFound
	}
	if product.SKU != in.SKU {
		dup, err := uc.productRepo.GetByOrgAndSKU(rc.OrganizationID, in.SKU)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
	}
	product.Name = in.Name
	product.SKU = in.SKU
	product.Description = optionalText(in.Description)
	product.MinStock = in.MinStock
	product.CategoryID = in.CategoryID
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	uc.views.InvalidateInventoryViews(ctx, rc.OrganizationID, rc.CountryCode)
	return product, nil
}

// Delete elimina un producto de la organización.
func (uc *ProductUseCase) Delete(ctx context.Context, rc appctx.RequestContext, productID string) error {
	if err := rc.Validate(); err != nil {
		return err
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !rc.CanSee(product.OrganizationID, product.CountryCode) {
		return domain.ErrProductNotFound
	}
	if err := uc.productRepo.Delete(product.ID); err != nil {
		return err
	}
	uc.views.InvalidateInventoryViews(ctx, rc.OrganizationID, rc.CountryCode)
	return nil
}

// GetByID devuelve un producto visible para el actor.
func (uc *ProductUseCase) GetByID(ctx context.Context, rc appctx.RequestContext, productID string) (*entity.Product, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !rc.CanSee(product.OrganizationID, product.CountryCode) {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// List lista los productos de la organización y país del actor.
func (uc *ProductUseCase) List(ctx context.Context, rc appctx.RequestContext, page dto.PageRequest) ([]*entity.Product, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	return uc.productRepo.ListByOrgAndCountry(rc.OrganizationID, rc.CountryCode, page.Limit, page.Offset)
}

// optionalText convierte "" en nil.
func optionalText(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

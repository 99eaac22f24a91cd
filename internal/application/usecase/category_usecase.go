package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/genekit/inventory-api/internal/application/appctx"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
)

var hexColorRe = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CategoryUseCase alta y listado de categorías.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// Create crea una categoría. El nombre debe ser único en la organización;
// el color, si viene, debe ser hex (#RGB o #RRGGBB).
func (uc *CategoryUseCase) Create(ctx context.Context, rc appctx.RequestContext, in dto.CreateCategoryRequest) (*entity.Category, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Color != "" && !hexColorRe.MatchString(in.Color) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categoryRepo.GetByOrgAndName(rc.OrganizationID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate // ya existe una categoría con este nombre
	}
	category := &entity.Category{
		Name:           in.Name,
		Color:          optionalText(in.Color),
		OrganizationID: rc.OrganizationID,
		CreatedAt:      time.Now(),
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// List lista las categorías de la organización del actor.
func (uc *CategoryUseCase) List(ctx context.Context, rc appctx.RequestContext) ([]*entity.Category, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return uc.categoryRepo.ListByOrg(rc.OrganizationID)
}

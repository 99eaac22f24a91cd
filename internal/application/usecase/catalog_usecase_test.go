package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/application/usecase"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
)

// fakeCatalogCategoryRepo categorías indexadas por org+nombre.
type fakeCatalogCategoryRepo struct {
	byName  map[string]*entity.Category
	created []*entity.Category
}

func (f *fakeCatalogCategoryRepo) Create(c *entity.Category) error {
	f.created = append(f.created, c)
	return nil
}
func (f *fakeCatalogCategoryRepo) GetByOrgAndName(organizationID, name string) (*entity.Category, error) {
	if f.byName == nil {
		return nil, nil
	}
	return f.byName[organizationID+":"+name], nil
}
func (f *fakeCatalogCategoryRepo) GetByID(int64) (*entity.Category, error) { return nil, nil }
func (f *fakeCatalogCategoryRepo) ListByOrg(string) ([]*entity.Category, error) {
	return nil, nil
}

// fakeSupplierStore proveedores en memoria.
type fakeSupplierStore struct {
	byID    map[string]*entity.Supplier
	created []*entity.Supplier
	deleted []string
}

func newFakeSupplierStore(suppliers ...*entity.Supplier) *fakeSupplierStore {
	m := make(map[string]*entity.Supplier)
	for _, s := range suppliers {
		m[s.ID] = s
	}
	return &fakeSupplierStore{byID: m}
}

func (f *fakeSupplierStore) Create(s *entity.Supplier) error {
	f.created = append(f.created, s)
	f.byID[s.ID] = s
	return nil
}
func (f *fakeSupplierStore) GetByID(id string) (*entity.Supplier, error) { return f.byID[id], nil }
func (f *fakeSupplierStore) Update(s *entity.Supplier) error             { f.byID[s.ID] = s; return nil }
func (f *fakeSupplierStore) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeSupplierStore) ListByOrg(string) ([]*entity.Supplier, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateCategory_ConColorHex(t *testing.T) {
	repo := &fakeCatalogCategoryRepo{}
	uc := usecase.NewCategoryUseCase(repo)

	category, err := uc.Create(context.Background(), actorContext(), dto.CreateCategoryRequest{
		Name:  "Oncología",
		Color: "#3B82F6",
	})
	require.NoError(t, err)
	assert.Equal(t, testOrgID, category.OrganizationID)
	require.NotNil(t, category.Color)
	assert.Equal(t, "#3B82F6", *category.Color)
}

func TestCreateCategory_ColorInvalido(t *testing.T) {
	uc := usecase.NewCategoryUseCase(&fakeCatalogCategoryRepo{})

	for _, color := range []string{"azul", "3B82F6", "#12345", "#GGGGGG"} {
		_, err := uc.Create(context.Background(), actorContext(), dto.CreateCategoryRequest{
			Name:  "Oncología",
			Color: color,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "color %q", color)
	}
}

func TestCreateCategory_NombreDuplicadoEnOrganizacion(t *testing.T) {
	repo := &fakeCatalogCategoryRepo{byName: map[string]*entity.Category{
		testOrgID + ":Oncología": {ID: 1, Name: "Oncología", OrganizationID: testOrgID},
	}}
	uc := usecase.NewCategoryUseCase(repo)

	_, err := uc.Create(context.Background(), actorContext(), dto.CreateCategoryRequest{Name: "Oncología"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateCategory_SinNombre(t *testing.T) {
	uc := usecase.NewCategoryUseCase(&fakeCatalogCategoryRepo{})

	_, err := uc.Create(context.Background(), actorContext(), dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSupplier_CamposOpcionalesNormalizados(t *testing.T) {
	store := newFakeSupplierStore()
	uc := usecase.NewSupplierUseCase(store)

	supplier, err := uc.Create(context.Background(), actorContext(), dto.CreateSupplierRequest{
		Name:         "BioSupply",
		ContactEmail: "ventas@biosupply.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, testOrgID, supplier.OrganizationID)
	require.NotNil(t, supplier.ContactEmail)
	assert.Nil(t, supplier.Phone, "teléfono ausente queda nil")
}

func TestCreateSupplier_EmailInvalido(t *testing.T) {
	uc := usecase.NewSupplierUseCase(newFakeSupplierStore())

	_, err := uc.Create(context.Background(), actorContext(), dto.CreateSupplierRequest{
		Name:         "BioSupply",
		ContactEmail: "no-es-un-email",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateSupplier_DeOtraOrganizacion_NotFound(t *testing.T) {
	ajeno := &entity.Supplier{ID: existingID, Name: "Ajeno", OrganizationID: otherOrgID}
	uc := usecase.NewSupplierUseCase(newFakeSupplierStore(ajeno))

	_, err := uc.Update(context.Background(), actorContext(), existingID, dto.CreateSupplierRequest{Name: "Nuevo"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSupplier_Propio(t *testing.T) {
	propio := &entity.Supplier{ID: existingID, Name: "BioSupply", OrganizationID: testOrgID}
	store := newFakeSupplierStore(propio)
	uc := usecase.NewSupplierUseCase(store)

	require.NoError(t, uc.Delete(context.Background(), actorContext(), existingID))
	assert.Equal(t, []string{existingID}, store.deleted)
}

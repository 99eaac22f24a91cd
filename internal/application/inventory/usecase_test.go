package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genekit/inventory-api/internal/application/appctx"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/application/inventory"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
	"github.com/genekit/inventory-api/pkg/logger"
)

const (
	testOrgID   = "33333333-3333-3333-3333-333333333333"
	testActorID = "44444444-4444-4444-4444-444444444444"
	otherOrgID  = "55555555-5555-5555-5555-555555555555"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeProductRepo repositorio de productos en memoria con contadores de acceso.
type fakeProductRepo struct {
	products   map[string]*entity.Product
	reads      int
	stockByID  map[string]int
	updateErrs error
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m, stockByID: map[string]int{}}
}

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	f.reads++
	return f.products[id], nil
}
func (f *fakeProductRepo) GetByOrgAndSKU(string, string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	f.reads++
	return f.products[id], nil
}
func (f *fakeProductRepo) UpdateStock(id string, newStock int) error {
	if f.updateErrs != nil {
		return f.updateErrs
	}
	f.stockByID[id] = newStock
	return nil
}
func (f *fakeProductRepo) Update(*entity.Product) error { return nil }
func (f *fakeProductRepo) Delete(string) error          { return nil }
func (f *fakeProductRepo) ListByOrgAndCountry(string, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

// fakeMovementRepo captura los movimientos insertados.
type fakeMovementRepo struct {
	created []*entity.Movement
}

func (f *fakeMovementRepo) Create(m *entity.Movement) error { f.created = append(f.created, m); return nil }
func (f *fakeMovementRepo) ListByOrgAndCountry(string, string, int, int) ([]*repository.MovementWithRefs, error) {
	return nil, nil
}
func (f *fakeMovementRepo) CountSince(string, string, time.Time) (int, error) { return 0, nil }

// fakeSupplierRepo resuelve proveedores desde un mapa fijo.
type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
	reads     int
}

func (f *fakeSupplierRepo) Create(*entity.Supplier) error { return nil }
func (f *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	f.reads++
	if f.suppliers == nil {
		return nil, nil
	}
	return f.suppliers[id], nil
}
func (f *fakeSupplierRepo) Update(*entity.Supplier) error { return nil }
func (f *fakeSupplierRepo) Delete(string) error           { return nil }
func (f *fakeSupplierRepo) ListByOrg(string) ([]*entity.Supplier, error) {
	return nil, nil
}

// fakeTxRunner ejecuta la función directamente con los fakes; Commits cuenta
// ejecuciones completadas sin error (transacciones "confirmadas").
type fakeTxRunner struct {
	productRepo  *fakeProductRepo
	movementRepo *fakeMovementRepo
	runs         int
	commits      int
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	f.runs++
	if err := fn(f.productRepo, f.movementRepo); err != nil {
		return err
	}
	f.commits++
	return nil
}

// spyInvalidator registra las invalidaciones de vistas.
type spyInvalidator struct {
	calls []string
}

func (s *spyInvalidator) InvalidateInventoryViews(_ context.Context, organizationID, countryCode string) {
	s.calls = append(s.calls, organizationID+":"+countryCode)
}

// fixture arma el caso de uso con todos los dobles.
type fixture struct {
	uc       *inventory.RegisterMovementUseCase
	products *fakeProductRepo
	moves    *fakeMovementRepo
	supplier *fakeSupplierRepo
	tx       *fakeTxRunner
	views    *spyInvalidator
}

func newFixture(products ...*entity.Product) *fixture {
	productRepo := newFakeProductRepo(products...)
	movementRepo := &fakeMovementRepo{}
	supplierRepo := &fakeSupplierRepo{}
	tx := &fakeTxRunner{productRepo: productRepo, movementRepo: movementRepo}
	views := &spyInvalidator{}
	uc := inventory.NewRegisterMovementUseCase(tx, supplierRepo, views, logger.Nop())
	return &fixture{uc: uc, products: productRepo, moves: movementRepo, supplier: supplierRepo, tx: tx, views: views}
}

func actorContext() appctx.RequestContext {
	return appctx.RequestContext{
		ActorID:        testActorID,
		Email:          "operador@example.com",
		OrganizationID: testOrgID,
		Role:           entity.RoleManager,
		CountryCode:    "MX",
	}
}

func testProduct(stock int) *entity.Product {
	return &entity.Product{
		ID:             validProductID,
		Name:           "Kit BRCA",
		SKU:            "KIT-BRCA-01",
		CurrentStock:   stock,
		MinStock:       5,
		OrganizationID: testOrgID,
		CountryCode:    "MX",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EntradaActualizaStockYPersiste(t *testing.T) {
	f := newFixture(testProduct(10))

	req := entradaRequest() // quantity 10
	movement, err := f.uc.Register(context.Background(), actorContext(), req)
	require.NoError(t, err)

	assert.Equal(t, 20, f.products.stockByID[validProductID], "10 existentes + 10 de entrada")
	require.Len(t, f.moves.created, 1)
	assert.Equal(t, 1, f.tx.commits)

	// organization_id y created_by vienen del contexto, nunca del body.
	assert.Equal(t, testOrgID, movement.OrganizationID)
	assert.Equal(t, testActorID, movement.CreatedBy)
	assert.Equal(t, "MX", movement.CountryCode)
	assert.NotEmpty(t, movement.ID)
}

func TestRegister_SalidaDescuentaStock(t *testing.T) {
	f := newFixture(testProduct(10))

	req := salidaRequest() // quantity 5
	req.Recipient = "Sucursal Norte"
	_, err := f.uc.Register(context.Background(), actorContext(), req)
	require.NoError(t, err)

	assert.Equal(t, 5, f.products.stockByID[validProductID])
	require.Len(t, f.moves.created, 1)
	assert.Equal(t, "Sucursal Norte", *f.moves.created[0].Recipient)
}

func TestRegister_SalidaInsuficiente_NadaPersiste(t *testing.T) {
	f := newFixture(testProduct(3))

	req := salidaRequest() // quantity 5 > stock 3
	_, err := f.uc.Register(context.Background(), actorContext(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Stock actual: 3, solicitado: 5")

	// La transacción no confirma: ni movimiento ni stock tocado, ni invalidación.
	assert.Empty(t, f.moves.created)
	assert.Empty(t, f.products.stockByID)
	assert.Zero(t, f.tx.commits)
	assert.Empty(t, f.views.calls)
}

// Fallo de validación: se rechaza antes de tocar repositorio alguno.
func TestRegister_ValidacionFallida_SinLecturas(t *testing.T) {
	f := newFixture(testProduct(10))

	req := entradaRequest()
	req.Quantity = "abc"
	_, err := f.uc.Register(context.Background(), actorContext(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "La cantidad debe ser un número", err.Error())
	assert.Zero(t, f.products.reads, "ninguna lectura antes de validar")
	assert.Zero(t, f.supplier.reads)
	assert.Zero(t, f.tx.runs)
}

func TestRegister_SinAutenticar_Rechazado(t *testing.T) {
	f := newFixture(testProduct(10))

	_, err := f.uc.Register(context.Background(), appctx.RequestContext{}, entradaRequest())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Zero(t, f.tx.runs)
}

func TestRegister_SinOrganizacion_Rechazado(t *testing.T) {
	f := newFixture(testProduct(10))

	rc := appctx.RequestContext{ActorID: testActorID}
	_, err := f.uc.Register(context.Background(), rc, entradaRequest())
	assert.ErrorIs(t, err, domain.ErrUserContext)
}

// Producto de otra organización: mismo error que inexistente, sin filtrar existencia.
func TestRegister_ProductoDeOtraOrganizacion_NotFound(t *testing.T) {
	ajeno := testProduct(10)
	ajeno.OrganizationID = otherOrgID
	f := newFixture(ajeno)

	_, err := f.uc.Register(context.Background(), actorContext(), entradaRequest())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, f.moves.created)
}

func TestRegister_ProductoDeOtroPais_NotFound(t *testing.T) {
	foraneo := testProduct(10)
	foraneo.CountryCode = "UY"
	f := newFixture(foraneo)

	_, err := f.uc.Register(context.Background(), actorContext(), entradaRequest())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// La cuenta multi-país sí ve productos de otros países de su organización.
func TestRegister_CuentaMultiPais_VeOtrosPaises(t *testing.T) {
	foraneo := testProduct(10)
	foraneo.CountryCode = "UY"
	f := newFixture(foraneo)

	rc := actorContext()
	rc.MultiCountry = true
	_, err := f.uc.Register(context.Background(), rc, entradaRequest())
	require.NoError(t, err)
	assert.Len(t, f.moves.created, 1)
}

func TestRegister_ProveedorInexistente_NotFound(t *testing.T) {
	f := newFixture(testProduct(10))

	req := entradaRequest()
	req.SupplierID = validSupplierID
	_, err := f.uc.Register(context.Background(), actorContext(), req)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.tx.runs, "la transacción no arranca con proveedor inválido")
}

func TestRegister_ProveedorDeOtraOrganizacion_NotFound(t *testing.T) {
	f := newFixture(testProduct(10))
	f.supplier.suppliers = map[string]*entity.Supplier{
		validSupplierID: {ID: validSupplierID, Name: "BioSupply", OrganizationID: otherOrgID},
	}

	req := entradaRequest()
	req.SupplierID = validSupplierID
	_, err := f.uc.Register(context.Background(), actorContext(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_InvalidaVistasTrasConfirmar(t *testing.T) {
	f := newFixture(testProduct(10))

	_, err := f.uc.Register(context.Background(), actorContext(), entradaRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{testOrgID + ":MX"}, f.views.calls)
}

// Sin deduplicación: dos envíos idénticos crean dos movimientos y aplican dos veces.
func TestRegister_DobleEnvio_DosMovimientos(t *testing.T) {
	f := newFixture(testProduct(0))

	rc := actorContext()
	req := entradaRequest() // quantity 10
	_, err := f.uc.Register(context.Background(), rc, req)
	require.NoError(t, err)

	// El fake no muta la entidad, se simula la visión de la segunda tx.
	f.products.products[validProductID].CurrentStock = f.products.stockByID[validProductID]

	_, err = f.uc.Register(context.Background(), rc, req)
	require.NoError(t, err)

	assert.Len(t, f.moves.created, 2)
	assert.Equal(t, 20, f.products.stockByID[validProductID])
	assert.NotEqual(t, f.moves.created[0].ID, f.moves.created[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial
// ──────────────────────────────────────────────────────────────────────────────

type fakeHistoryRepo struct {
	fakeMovementRepo
	lastLimit  int
	lastOffset int
	rows       []*repository.MovementWithRefs
}

func (f *fakeHistoryRepo) ListByOrgAndCountry(_, _ string, limit, offset int) ([]*repository.MovementWithRefs, error) {
	f.lastLimit = limit
	f.lastOffset = offset
	return f.rows, nil
}

func TestHistory_PaginacionPorDefecto(t *testing.T) {
	repo := &fakeHistoryRepo{}
	uc := inventory.NewMovementHistoryUseCase(repo)

	items, err := uc.List(context.Background(), actorContext(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 20, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)
}

func TestHistory_LimiteMaximo(t *testing.T) {
	repo := &fakeHistoryRepo{}
	uc := inventory.NewMovementHistoryUseCase(repo)

	_, err := uc.List(context.Background(), actorContext(), dto.PageRequest{Limit: 500, Offset: 40})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit, "el límite se recorta a 100")
	assert.Equal(t, 40, repo.lastOffset)
}

func TestHistory_SinAutenticar_Rechazado(t *testing.T) {
	uc := inventory.NewMovementHistoryUseCase(&fakeHistoryRepo{})

	_, err := uc.List(context.Background(), appctx.RequestContext{}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

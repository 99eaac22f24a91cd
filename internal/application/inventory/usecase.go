package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/genekit/inventory-api/internal/application/appctx"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
	"github.com/genekit/inventory-api/internal/domain/repository"
	"github.com/genekit/inventory-api/internal/domain/stock"
	"github.com/genekit/inventory-api/pkg/logger"
)

// RegisterMovementUseCase registra movimientos de stock de forma transaccional
// (Entrada/Salida) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	supplierRepo repository.SupplierRepository
	views        ViewInvalidator
	log          *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	supplierRepo repository.SupplierRepository,
	views ViewInvalidator,
	log *logger.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, supplierRepo: supplierRepo, views: views, log: log}
}

// Register orquesta el registro completo de un movimiento:
//  1. precondición: actor autenticado con tenant resuelto (RequestContext)
//  2. validación del juego de campos crudo (coerción de quantity incluida)
//  3. transacción: bloqueo de la fila del producto, transición de stock
//     (la suficiencia para salidas se verifica aquí, con la fila bloqueada),
//     actualización del contador e insert del movimiento
//  4. invalidación de las vistas cacheadas de inventario y tablero
//
// organization_id y created_by se inyectan del contexto, nunca del caller.
// Devuelve el movimiento persistido o un error de dominio; ningún pánico
// cruza este límite.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, rc appctx.RequestContext, in dto.RegisterMovementRequest) (*entity.Movement, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	input, verrs := ValidateMovement(in)
	if verrs != nil {
		// El caller recibe solo el primer mensaje; la lista completa queda en el log.
		ev := uc.log.Debug().Str("actor", rc.ActorID).Str("type", in.Type)
		for _, fe := range verrs {
			ev = ev.Str("campo_"+fe.Field, fe.Message)
		}
		ev.Msg("movimiento rechazado por validación")
		return nil, verrs
	}

	// El proveedor referenciado debe existir y ser de la organización.
	if input.Entrada != nil && input.Entrada.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(*input.Entrada.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil || supplier.OrganizationID != rc.OrganizationID {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	movement := &entity.Movement{
		ID:             uuid.New().String(),
		ProductID:      input.ProductID,
		Type:           input.Type,
		Quantity:       input.Quantity,
		Notes:          input.Notes,
		OrganizationID: rc.OrganizationID,
		CountryCode:    rc.CountryCode,
		CreatedBy:      rc.ActorID,
		CreatedAt:      now,
	}
	if input.Entrada != nil {
		movement.LotNumber = input.Entrada.LotNumber
		movement.ExpirationDate = input.Entrada.ExpirationDate
		movement.SupplierID = input.Entrada.SupplierID
	}
	if input.Salida != nil {
		movement.Recipient = input.Salida.Recipient
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del producto: dos salidas concurrentes del mismo
		// producto se serializan aquí y la segunda ve el stock ya decrementado.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !rc.CanSee(product.OrganizationID, product.CountryCode) {
			return domain.ErrProductNotFound
		}
		newStock, err := stock.Apply(product.CurrentStock, input.Type, input.Quantity)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}

	// Señal de invalidación: las vistas de inventario y tablero deben refrescarse.
	uc.views.InvalidateInventoryViews(ctx, rc.OrganizationID, rc.CountryCode)

	uc.log.Info().
		Str("movement_id", movement.ID).
		Str("product_id", movement.ProductID).
		Str("type", movement.Type).
		Int("quantity", movement.Quantity).
		Msg("movimiento registrado")
	return movement, nil
}

// MovementHistoryUseCase lista el historial de movimientos con sus referencias
// (producto, autor, proveedor) resueltas en SQL.
type MovementHistoryUseCase struct {
	movementRepo repository.MovementRepository
}

// NewMovementHistoryUseCase construye el caso de uso.
func NewMovementHistoryUseCase(movementRepo repository.MovementRepository) *MovementHistoryUseCase {
	return &MovementHistoryUseCase{movementRepo: movementRepo}
}

// List devuelve el historial paginado de la organización y país del actor.
func (uc *MovementHistoryUseCase) List(ctx context.Context, rc appctx.RequestContext, page dto.PageRequest) ([]*dto.MovementHistoryItem, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	rows, err := uc.movementRepo.ListByOrgAndCountry(rc.OrganizationID, rc.CountryCode, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.MovementHistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.ToMovementHistoryItem(row))
	}
	return items, nil
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/application/inventory"
	"github.com/genekit/inventory-api/pkg/logger"
)

// MovementHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type MovementHandler struct {
	register *inventory.RegisterMovementUseCase
	history  *inventory.MovementHistoryUseCase
	log      *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, history *inventory.MovementHistoryUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{register: register, history: history, log: log}
}

// Register godoc
// @Summary      Registrar movimiento de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (Entrada|Salida), quantity; opcionales lot_number, expiration_date, supplier_id (entradas), recipient (salidas), notes"
// @Success      201   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	movement, err := h.register.Register(c.Context(), rc, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{
		Success: true,
		Data:    dto.ToMovementResponse(movement),
		Message: "Movimiento registrado correctamente",
	})
}

// History godoc
// @Summary      Historial de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (máx 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}   dto.MovementHistoryItem
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Error: "parámetros inválidos"})
	}
	items, err := h.history.List(c.Context(), rc, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "movements": items})
}

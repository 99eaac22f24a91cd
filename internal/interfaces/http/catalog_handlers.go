package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/application/usecase"
	"github.com/genekit/inventory-api/pkg/logger"
)

// CategoryHandler alta y listado de categorías (protegido).
type CategoryHandler struct {
	uc  *usecase.CategoryUseCase
	log *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "name; color hex opcional"
// @Success      201   {object}  dto.SuccessResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	category, err := h.uc.Create(c.Context(), rc, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{
		Success: true,
		Data:    dto.ToCategoryResponse(category),
		Message: "Categoría creada correctamente",
	})
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	categories, err := h.uc.List(c.Context(), rc)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]*dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, dto.ToCategoryResponse(cat))
	}
	return c.JSON(fiber.Map{"total": len(out), "categories": out})
}

// SupplierHandler CRUD de proveedores (protegido).
type SupplierHandler struct {
	uc  *usecase.SupplierUseCase
	log *logger.Logger
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase, log *logger.Logger) *SupplierHandler {
	return &SupplierHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "name; contact_email y phone opcionales"
// @Success      201   {object}  dto.SuccessResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	supplier, err := h.uc.Create(c.Context(), rc, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{
		Success: true,
		Data:    dto.ToSupplierResponse(supplier),
		Message: "Proveedor creado correctamente",
	})
}

// Update actualiza un proveedor de la organización.
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	supplier, err := h.uc.Update(c.Context(), rc, c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{
		Success: true,
		Data:    dto.ToSupplierResponse(supplier),
		Message: "Proveedor actualizado correctamente",
	})
}

// Delete elimina un proveedor de la organización.
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	if err := h.uc.Delete(c.Context(), rc, c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "Proveedor eliminado correctamente"})
}

// List lista los proveedores de la organización.
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	suppliers, err := h.uc.List(c.Context(), rc)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]*dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.ToSupplierResponse(s))
	}
	return c.JSON(fiber.Map{"total": len(out), "suppliers": out})
}

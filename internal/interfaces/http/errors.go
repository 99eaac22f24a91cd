package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/pkg/logger"
)

// respondError convierte cualquier error de caso de uso en el contrato
// `{error: string}` con el status adecuado. El detalle de errores inesperados
// va solo al log; el caller recibe un mensaje genérico.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Error: err.Error()})
	case errors.Is(err, domain.ErrUserContext):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "USER_CONTEXT", Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		// Incluye ValidationErrors: err.Error() es el primer mensaje de campo.
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Error: "producto no encontrado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Error: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		// El mensaje lleva stock actual y cantidad solicitada.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Error: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error inesperado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Error: "error inesperado"})
	}
}

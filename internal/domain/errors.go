package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los mensajes están en español porque son los que ve el usuario final.
var (
	ErrNotAuthenticated   = errors.New("no autenticado")
	ErrUserContext        = errors.New("error al obtener información del usuario")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// InsufficientStockError lleva las cantidades concretas de un rechazo por stock insuficiente.
// El mensaje incluye stock actual y cantidad solicitada; errors.Is lo empareja con ErrInsufficientStock.
type InsufficientStockError struct {
	Current   int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente. Stock actual: %d, solicitado: %d", e.Current, e.Requested)
}

// Is permite errors.Is(err, ErrInsufficientStock) sobre el error tipado.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

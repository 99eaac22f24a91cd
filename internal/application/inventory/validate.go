package inventory

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/internal/domain"
	"github.com/genekit/inventory-api/internal/domain/entity"
)

// FieldError es un error de validación a nivel de campo.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors lista ordenada de errores de campo. El caller ve solo el
// primero; la lista completa va al log de diagnóstico.
type ValidationErrors []FieldError

// Error devuelve el mensaje del primer error (contrato con el caller).
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return domain.ErrInvalidInput.Error()
	}
	return e[0].Message
}

// Is empareja con ErrInvalidInput para el mapeo HTTP.
func (e ValidationErrors) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

// EntradaFields campos con sentido solo en movimientos de entrada.
type EntradaFields struct {
	LotNumber      *string
	ExpirationDate *string // YYYY-MM-DD
	SupplierID     *string
}

// SalidaFields campos con sentido solo en movimientos de salida.
type SalidaFields struct {
	Recipient *string
}

// MovementInput es la entrada ya validada, modelada como variante etiquetada:
// exactamente uno de Entrada/Salida es no-nil según Type. Así los campos de
// entrada no pueden filtrarse al procesamiento de salidas ni al revés.
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int
	Notes     *string // sin restricción de formato, válido en ambas direcciones
	Entrada   *EntradaFields
	Salida    *SalidaFields
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateMovement valida el juego de campos crudo y lo convierte en la
// variante etiquetada. Determinista y sin efectos: ninguna lectura ni
// escritura ocurre antes de pasar esta función.
func ValidateMovement(in dto.RegisterMovementRequest) (*MovementInput, ValidationErrors) {
	var errs ValidationErrors

	if _, err := uuid.Parse(in.ProductID); err != nil {
		errs = append(errs, FieldError{Field: "product_id", Message: "ID de producto inválido"})
	}

	typeOK := entity.ValidMovementType(in.Type)
	if !typeOK {
		errs = append(errs, FieldError{Field: "type", Message: "El tipo debe ser 'Entrada' o 'Salida'"})
	}

	qty, qtyErr := coerceQuantity(in.Quantity)
	if qtyErr != nil {
		errs = append(errs, FieldError{Field: "quantity", Message: qtyErr.Message})
	}

	// Campos contextuales: se validan formato solo si vienen, nunca son requeridos.
	if in.ExpirationDate != "" && !dateRe.MatchString(in.ExpirationDate) {
		errs = append(errs, FieldError{Field: "expiration_date", Message: "Formato de fecha inválido. Use YYYY-MM-DD"})
	}
	if in.Type == entity.MovementTypeEntrada && in.SupplierID != "" {
		if _, err := uuid.Parse(in.SupplierID); err != nil {
			errs = append(errs, FieldError{Field: "supplier_id", Message: "ID de proveedor inválido"})
		}
	}
	if in.Type == entity.MovementTypeSalida && in.Recipient != "" && strings.TrimSpace(in.Recipient) == "" {
		errs = append(errs, FieldError{Field: "recipient", Message: "El destinatario no puede estar vacío si se proporciona"})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	input := &MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  qty,
		Notes:     optional(in.Notes),
	}
	switch in.Type {
	case entity.MovementTypeEntrada:
		input.Entrada = &EntradaFields{
			LotNumber:      optional(in.LotNumber),
			ExpirationDate: optional(in.ExpirationDate),
			SupplierID:     optional(in.SupplierID),
		}
	case entity.MovementTypeSalida:
		input.Salida = &SalidaFields{
			Recipient: optional(in.Recipient),
		}
	}
	return input, nil
}

// coerceQuantity convierte el texto del formulario a entero positivo.
// Distingue "no es un número" de "no es entero" y de "no es positivo".
func coerceQuantity(raw string) (int, *FieldError) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &FieldError{Field: "quantity", Message: "La cantidad debe ser un número"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		if _, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return 0, &FieldError{Field: "quantity", Message: "La cantidad debe ser un número entero"}
		}
		return 0, &FieldError{Field: "quantity", Message: "La cantidad debe ser un número"}
	}
	if n <= 0 {
		return 0, &FieldError{Field: "quantity", Message: "La cantidad debe ser mayor a 0"}
	}
	return n, nil
}

// optional convierte "" (campo ausente del formulario) en nil.
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

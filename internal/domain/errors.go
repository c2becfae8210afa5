package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrForbidden         = errors.New("acceso denegado")
	ErrUnknownRole       = errors.New("rol no reconocido")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNoOutstandingDebt = errors.New("la venta no tiene deuda pendiente")
	ErrTimeout           = errors.New("la transacción excedió el tiempo límite")
)

// ProductError identifica el producto que hizo fallar una venta.
// Unwrap devuelve ErrNotFound o ErrInsufficientStock para comparar con errors.Is.
type ProductError struct {
	Err       error
	ProductID int64
	Name      string
}

func (e *ProductError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: producto %d (%s)", e.Err.Error(), e.ProductID, e.Name)
	}
	return fmt.Sprintf("%s: producto %d", e.Err.Error(), e.ProductID)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}

// FieldError detalla qué campo de la petición es inválido. Unwrap devuelve ErrInvalidInput.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

// InvalidField construye un FieldError.
func InvalidField(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

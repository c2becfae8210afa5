package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtPayment registra un abono aplicado a la deuda de una venta (tabla abonos_venta).
// CustomerUpdated queda en false cuando el saldo del cliente no se tocó (cliente inexistente o sin permiso).
type DebtPayment struct {
	ID              int64
	VentaID         int64
	ClienteID       *int64
	Requested       decimal.Decimal
	Paid            decimal.Decimal
	PreviousDebt    decimal.Decimal
	NewDebt         decimal.Decimal
	CustomerUpdated bool
	UserID          int64
	CreatedAt       time.Time
}

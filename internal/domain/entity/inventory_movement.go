package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida (venta)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste
)

// InventoryMovement representa un movimiento del kardex (tabla movimientos_inventario).
// Las ventas generan un OUT por línea con el costo de compra vigente.
type InventoryMovement struct {
	ID            int64
	TransactionID string // agrupa los movimientos de una misma venta
	ProductID     int64
	VentaID       *int64
	Type          string
	Quantity      decimal.Decimal // negativo en salidas
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	StockAfter    decimal.Decimal
	CreatedAt     time.Time
	CreatedBy     int64
}

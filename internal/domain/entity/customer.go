package entity

import "github.com/shopspring/decimal"

// Customer representa un cliente (tabla clientes).
// SaldoPendiente es la suma de deuda no cobrada de todas sus ventas; nunca negativo.
type Customer struct {
	ID             int64
	Nombre         string
	SaldoPendiente decimal.Decimal
}

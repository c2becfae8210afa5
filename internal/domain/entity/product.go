package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo (tabla productos).
// El motor de ventas solo lee el producto y descuenta Stock; el alta y la edición son de otro módulo.
type Product struct {
	ID            int64
	SKU           string          // código único
	Name          string
	Price         decimal.Decimal // precio de venta
	PurchasePrice decimal.Decimal // precio de compra; se copia a cada línea de venta
	Stock         decimal.Decimal // nunca negativo
	StockUnit     string          // unidad, kg, lt...
}

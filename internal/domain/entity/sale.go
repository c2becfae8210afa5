package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago habituales (metodo_pago es texto libre en la tabla ventas).
const (
	PaymentMethodCash     = "efectivo"
	PaymentMethodTransfer = "transferencia"
	PaymentMethodCard     = "tarjeta"
)

// Sale representa la cabecera de una venta (tabla ventas).
// Deuda es el único campo que cambia después de crearse (abonos).
type Sale struct {
	ID                   int64
	Total                decimal.Decimal
	Recibido             decimal.Decimal
	Cambio               decimal.Decimal
	MetodoPago           string
	ClienteID            *int64 // referencia débil; nil para ventas sin crédito
	Deuda                decimal.Decimal
	UserID               int64 // vendedor que registró la venta
	TitularTransferencia *string
	BancoTransferencia   *string
	Fecha                time.Time

	ClienteNombre string // solo lectura (LEFT JOIN clientes)
}

// SaleLineItem representa una línea de venta (tabla venta_detalles). Inmutable.
type SaleLineItem struct {
	ID            int64
	VentaID       int64
	ProductoID    int64
	Cantidad      decimal.Decimal
	Precio        decimal.Decimal
	PurchasePrice decimal.Decimal // costo del producto al momento de la venta
}

// SaleLineDetail línea de venta con la identidad del producto, para consulta.
type SaleLineDetail struct {
	SaleLineItem
	ProductName string
	ProductSKU  string
	StockUnit   string
}

// Subtotal devuelve Cantidad * Precio.
func (l SaleLineItem) Subtotal() decimal.Decimal {
	return l.Cantidad.Mul(l.Precio)
}

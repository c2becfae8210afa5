package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NullableID id opcional que llega del POS como número, texto o null.
// Cualquier valor que no sea un entero positivo se normaliza a nil.
type NullableID struct {
	Value *int64
}

// UnmarshalJSON nunca falla: lo irreconocible queda como nil.
func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Value = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	n.Value = &id
	return nil
}

// MarshalJSON escribe el id o null.
func (n NullableID) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(*n.Value, 10)), nil
}

// SaleItemRequest línea de la venta tal como la envía el POS.
type SaleItemRequest struct {
	ProductoID int64            `json:"producto_id"`
	Cantidad   *decimal.Decimal `json:"cantidad"`
	Precio     *decimal.Decimal `json:"precio"`
}

// TransferRequest datos opcionales de una venta por transferencia.
type TransferRequest struct {
	Titular string `json:"titular"`
	Banco   string `json:"banco"`
}

// CreateSaleRequest cuerpo de POST /api/sales.
type CreateSaleRequest struct {
	Total      *decimal.Decimal  `json:"total"`
	Recibido   *decimal.Decimal  `json:"recibido"`
	Cambio     *decimal.Decimal  `json:"cambio"`
	MetodoPago string            `json:"metodo_pago"`
	UserID     *int64            `json:"user_id"` // vacío = usuario del token
	ClienteID  NullableID        `json:"cliente_id"`
	Items      []SaleItemRequest `json:"items"`
	Deuda      *decimal.Decimal  `json:"deuda"`
	Transfer   *TransferRequest  `json:"transfer"`
}

// CreateSaleResponse respuesta de POST /api/sales.
type CreateSaleResponse struct {
	Success            bool            `json:"success"`
	VentaID            int64           `json:"venta_id"`
	DeudaGuardada      decimal.Decimal `json:"deuda_guardada"`
	ClienteActualizado bool            `json:"cliente_actualizado"`
}

// PayDebtRequest cuerpo de POST /api/sales/:id/pay-debt.
type PayDebtRequest struct {
	Monto *decimal.Decimal `json:"monto"`
}

// PayDebtResponse respuesta del abono.
type PayDebtResponse struct {
	Success            bool            `json:"success"`
	PagoRegistrado     decimal.Decimal `json:"pago_registrado"`
	DeudaAnterior      decimal.Decimal `json:"deuda_anterior"`
	DeudaActualizada   decimal.Decimal `json:"deuda_actualizada"`
	ClienteActualizado bool            `json:"cliente_actualizado"`
}

// SaleDTO fila del listado de ventas.
type SaleDTO struct {
	ID                   int64           `json:"id"`
	Total                decimal.Decimal `json:"total"`
	Recibido             decimal.Decimal `json:"recibido"`
	Cambio               decimal.Decimal `json:"cambio"`
	MetodoPago           string          `json:"metodo_pago"`
	ClienteID            *int64          `json:"cliente_id"`
	ClienteNombre        string          `json:"cliente_nombre,omitempty"`
	Deuda                decimal.Decimal `json:"deuda"`
	UserID               int64           `json:"user_id"`
	TitularTransferencia *string         `json:"titular_transferencia"`
	BancoTransferencia   *string         `json:"banco_transferencia"`
	Fecha                time.Time       `json:"fecha"`
}

// SaleLineDTO línea del detalle de una venta.
type SaleLineDTO struct {
	ID            int64           `json:"id"`
	ProductoID    int64           `json:"producto_id"`
	ProductName   string          `json:"product_name"`
	ProductSKU    string          `json:"product_sku"`
	StockUnit     string          `json:"stock_unit"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Precio        decimal.Decimal `json:"precio"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// SalesSummaryDTO resumen de ventas del período visible para el usuario.
type SalesSummaryDTO struct {
	Filtro               string          `json:"filtro"`
	From                 *time.Time      `json:"from,omitempty"`
	To                   *time.Time      `json:"to,omitempty"`
	SalesCount           int64           `json:"sales_count"`
	Revenue              decimal.Decimal `json:"revenue"`
	Cost                 decimal.Decimal `json:"cost"`
	Margin               decimal.Decimal `json:"margin"`
	OutstandingDebt      decimal.Decimal `json:"outstanding_debt"`
	TotalOutstandingDebt decimal.Decimal `json:"total_outstanding_debt"` // toda la deuda visible, sin filtro
}

// DebtPaymentDTO abono registrado sobre una venta.
type DebtPaymentDTO struct {
	ID                 int64           `json:"id"`
	VentaID            int64           `json:"venta_id"`
	ClienteID          *int64          `json:"cliente_id"`
	MontoSolicitado    decimal.Decimal `json:"monto_solicitado"`
	MontoPagado        decimal.Decimal `json:"monto_pagado"`
	DeudaAnterior      decimal.Decimal `json:"deuda_anterior"`
	DeudaNueva         decimal.Decimal `json:"deuda_nueva"`
	ClienteActualizado bool            `json:"cliente_actualizado"`
	UserID             int64           `json:"user_id"`
	CreatedAt          time.Time       `json:"created_at"`
}

// InventoryMovementDTO movimiento del kardex generado por una venta.
type InventoryMovementDTO struct {
	ID              int64           `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	ProductoID      int64           `json:"producto_id"`
	Tipo            string          `json:"tipo"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	CostoUnitario   decimal.Decimal `json:"costo_unitario"`
	CostoTotal      decimal.Decimal `json:"costo_total"`
	StockResultante decimal.Decimal `json:"stock_resultante"`
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       int64           `json:"created_by"`
}

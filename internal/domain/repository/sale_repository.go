package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaleFilter restringe los listados de ventas. Campos vacíos no filtran.
type SaleFilter struct {
	UserID *int64     // visibilidad del vendedor
	From   *time.Time // inclusivo
	To     *time.Time // exclusivo
}

// SalesSummary agregados de ventas de un período.
type SalesSummary struct {
	SalesCount      int64
	Revenue         decimal.Decimal
	Cost            decimal.Decimal
	OutstandingDebt decimal.Decimal
}

// SaleRepository define el puerto de persistencia de ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLineItem(ctx context.Context, item *entity.SaleLineItem) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// GetForUpdate obtiene la venta y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error)
	UpdateDebt(ctx context.Context, id int64, debt decimal.Decimal) error
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	// ListLineDetails devuelve las líneas con nombre y sku del producto; vacío si no hay.
	ListLineDetails(ctx context.Context, saleID int64, filter SaleFilter) ([]*entity.SaleLineDetail, error)
	Summarize(ctx context.Context, filter SaleFilter) (*SalesSummary, error)
}

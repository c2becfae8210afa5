package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-ventas-api/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// Ledger descuenta stock dentro de la transacción de una venta y deja el movimiento OUT en el kardex.
// No abre transacciones propias: siempre recibe los repositorios de la transacción del llamador.
type Ledger struct{}

// NewLedger construye el ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// OutRef datos de la venta que origina la salida.
type OutRef struct {
	SaleID        int64
	UserID        int64
	TransactionID string
	At            time.Time
}

// ApplyDecrementInTx valida y aplica la salida de quantity sobre product (fila ya bloqueada por el llamador).
// Devuelve el stock resultante. Los errores de negocio son *domain.ProductError y abortan la venta completa.
func (l *Ledger) ApplyDecrementInTx(
	ctx context.Context,
	repos repository.SalesRepos,
	product *entity.Product,
	quantity decimal.Decimal,
	ref OutRef,
) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, domain.InvalidField("cantidad", "debe ser mayor que cero")
	}
	if !domainsales.IsQuantity(quantity) {
		return decimal.Zero, domain.InvalidField("cantidad", "admite máximo tres decimales")
	}
	if product.Stock.LessThan(quantity) {
		return decimal.Zero, &domain.ProductError{Err: domain.ErrInsufficientStock, ProductID: product.ID, Name: product.Name}
	}

	// UPDATE condicional: la base vuelve a comprobar stock >= cantidad.
	newStock, ok, err := repos.Products.DecrementStock(ctx, product.ID, quantity)
	if err != nil {
		return decimal.Zero, fmt.Errorf("descontar stock producto %d: %w", product.ID, err)
	}
	if !ok {
		current, err := repos.Products.GetByID(ctx, product.ID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("releer producto %d: %w", product.ID, err)
		}
		if current == nil {
			return decimal.Zero, &domain.ProductError{Err: domain.ErrNotFound, ProductID: product.ID}
		}
		return decimal.Zero, &domain.ProductError{Err: domain.ErrInsufficientStock, ProductID: product.ID, Name: current.Name}
	}
	product.Stock = newStock

	saleID := ref.SaleID
	mov := &entity.InventoryMovement{
		TransactionID: ref.TransactionID,
		ProductID:     product.ID,
		VentaID:       &saleID,
		Type:          entity.MovementTypeOUT,
		Quantity:      quantity.Neg(),
		UnitCost:      product.PurchasePrice,
		TotalCost:     quantity.Mul(product.PurchasePrice).Round(domainsales.MoneyPlaces),
		StockAfter:    newStock,
		CreatedAt:     ref.At,
		CreatedBy:     ref.UserID,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return decimal.Zero, fmt.Errorf("registrar movimiento OUT producto %d: %w", product.ID, err)
	}
	return newStock, nil
}

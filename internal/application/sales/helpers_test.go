package sales

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/application/inventory"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC) // miércoles

type fixture struct {
	store   *memory.Store
	record  *RecordSaleUseCase
	payment *ApplyPaymentUseCase
	query   *QueryUseCase
	history *HistoryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNop()
	f := &fixture{
		store:   store,
		record:  NewRecordSaleUseCase(store, inventory.NewLedger(), log),
		payment: NewApplyPaymentUseCase(store, log),
		query:   NewQueryUseCase(store.Sales(), time.UTC),
		history: NewHistoryUseCase(store.Sales(), store.DebtPayments(), store.Movements()),
	}
	f.record.now = func() time.Time { return fixedNow }
	f.payment.now = func() time.Time { return fixedNow }
	f.query.now = func() time.Time { return fixedNow }
	return f
}

func adminCaller() entity.Caller {
	return entity.Caller{Principal: entity.Principal{ID: 1, Role: entity.RoleAdmin}, Permissions: entity.AllPermissions()}
}

func vendedorCaller(id int64) entity.Caller {
	return entity.Caller{Principal: entity.Principal{ID: id, Role: entity.RoleVendedor}, Permissions: entity.DefaultVendedorPermissions()}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s", want, got.String())
}

func item(productID int64, qty, price string) dto.SaleItemRequest {
	return dto.SaleItemRequest{ProductoID: productID, Cantidad: decp(qty), Precio: decp(price)}
}

func cashSale(total string, items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		Total:      decp(total),
		Recibido:   decp(total),
		Cambio:     decp("0"),
		MetodoPago: entity.PaymentMethodCash,
		Items:      items,
	}
}

func (f *fixture) product(stock, purchase string) entity.Product {
	return f.store.AddProduct(entity.Product{
		SKU:           "SKU",
		Name:          "Arroz 500g",
		Price:         dec("2500"),
		PurchasePrice: dec(purchase),
		Stock:         dec(stock),
		StockUnit:     "unidad",
	})
}

func idPtr(id int64) dto.NullableID {
	return dto.NullableID{Value: &id}
}

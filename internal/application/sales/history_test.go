package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Historial de abonos y kardex por venta
// ──────────────────────────────────────────────────────────────────────────────

func TestHistory_AbonosEnOrden(t *testing.T) {
	f := newFixture(t)
	vend := vendedorCaller(7)
	saleID := f.creditSale(t, vend, "10000", 0)

	_, err := f.payment.ApplyPayment(context.Background(), vend, saleID, pay("4000"))
	require.NoError(t, err)
	_, err = f.payment.ApplyPayment(context.Background(), vend, saleID, pay("9000"))
	require.NoError(t, err)

	list, err := f.history.ListPayments(context.Background(), vend, saleID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assertDec(t, "4000", list[0].MontoPagado)
	assertDec(t, "6000", list[0].DeudaNueva)
	assertDec(t, "9000", list[1].MontoSolicitado)
	assertDec(t, "6000", list[1].MontoPagado)
	assertDec(t, "0", list[1].DeudaNueva)
	assert.Equal(t, int64(7), list[1].UserID)
}

func TestHistory_MovimientosDeLaVenta(t *testing.T) {
	f := newFixture(t)
	p := f.product("10", "900")
	res, err := f.record.RecordSale(context.Background(), adminCaller(), cashSale("7500", item(p.ID, "3", "2500")))
	require.NoError(t, err)

	list, err := f.history.ListMovements(context.Background(), adminCaller(), res.VentaID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.MovementTypeOUT, list[0].Tipo)
	assert.Equal(t, p.ID, list[0].ProductoID)
	assertDec(t, "-3", list[0].Cantidad)
	assertDec(t, "2700", list[0].CostoTotal)
	assertDec(t, "7", list[0].StockResultante)
	assert.NotEmpty(t, list[0].TransactionID)
}

func TestHistory_VentaAjenaOInexistenteEsVacia(t *testing.T) {
	f := newFixture(t)
	saleID := f.creditSale(t, vendedorCaller(7), "5000", 0)
	_, err := f.payment.ApplyPayment(context.Background(), vendedorCaller(7), saleID, pay("1000"))
	require.NoError(t, err)

	payments, err := f.history.ListPayments(context.Background(), vendedorCaller(8), saleID)
	require.NoError(t, err)
	assert.NotNil(t, payments)
	assert.Empty(t, payments)

	movements, err := f.history.ListMovements(context.Background(), adminCaller(), 999)
	require.NoError(t, err)
	assert.NotNil(t, movements)
	assert.Empty(t, movements)

	payments, err = f.history.ListPayments(context.Background(), adminCaller(), saleID)
	require.NoError(t, err)
	assert.Len(t, payments, 1, "admin ve los abonos de cualquier venta")
}

func TestHistory_Permisos(t *testing.T) {
	f := newFixture(t)

	noView := vendedorCaller(7)
	noView.Permissions.CanViewSales = false
	_, err := f.history.ListPayments(context.Background(), noView, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	unknown := entity.Caller{Principal: entity.Principal{ID: 3, Role: "cajero"}}
	_, err = f.history.ListMovements(context.Background(), unknown, 1)
	assert.ErrorIs(t, err, domain.ErrUnknownRole)

	_, err = f.history.ListPayments(context.Background(), adminCaller(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

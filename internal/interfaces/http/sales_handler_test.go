package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
)

func (s *testServer) seedProduct(stock, purchase string) entity.Product {
	return s.store.AddProduct(entity.Product{
		SKU:           "7701234",
		Name:          "Café 250g",
		PurchasePrice: decimalOf(purchase),
		Stock:         decimalOf(stock),
		StockUnit:     "unidad",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/sales
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_201YDetalle(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProduct("10", "1800")
	vend := bearer(t, 7, entity.RoleVendedor)

	body := fmt.Sprintf(`{"total":"7500","recibido":10000,"cambio":2500,"metodo_pago":"efectivo",
		"cliente_id":"abc","items":[{"producto_id":%d,"cantidad":3,"precio":2500}]}`, p.ID)
	resp := s.do(t, http.MethodPost, "/api/sales", vend, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CreateSaleResponse](t, resp)
	assert.True(t, created.Success)
	assert.False(t, created.ClienteActualizado)

	sale, ok := s.store.Sale(created.VentaID)
	require.True(t, ok)
	assert.Nil(t, sale.ClienteID, "cliente_id no numérico se guarda como null")
	assert.Equal(t, int64(7), sale.UserID)

	lines := decode[[]dto.SaleLineDTO](t, s.do(t, http.MethodGet, fmt.Sprintf("/api/sales/%d/detail", created.VentaID), vend, nil))
	require.Len(t, lines, 1)
	assert.Equal(t, "Café 250g", lines[0].ProductName)
	assert.Equal(t, "7701234", lines[0].ProductSKU)
	equalDec(t, "1800", lines[0].PurchasePrice)

	got, _ := s.store.Product(p.ID)
	equalDec(t, "7", got.Stock)
}

func TestCreateSale_StockInsuficienteEs500ConProducto(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProduct("1", "1800")

	body := fmt.Sprintf(`{"total":5000,"recibido":5000,"cambio":0,"metodo_pago":"efectivo",
		"items":[{"producto_id":%d,"cantidad":2,"precio":2500}]}`, p.ID)
	resp := s.do(t, http.MethodPost, "/api/sales", bearer(t, 1, entity.RoleAdmin), body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	er := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", er.Code)
	assert.Contains(t, er.Message, "Café 250g")

	sales, _ := s.store.Counts()
	assert.Zero(t, sales)
}

func TestCreateSale_ProductoInexistenteEs500(t *testing.T) {
	s := newTestServer(t)
	body := `{"total":1,"recibido":1,"cambio":0,"metodo_pago":"efectivo","items":[{"producto_id":404,"cantidad":1,"precio":1}]}`
	resp := s.do(t, http.MethodPost, "/api/sales", bearer(t, 1, entity.RoleAdmin), body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(t, resp))
}

func TestCreateSale_PeticionesMalformadas(t *testing.T) {
	s := newTestServer(t)
	admin := bearer(t, 1, entity.RoleAdmin)

	resp := s.do(t, http.MethodPost, "/api/sales", admin, `{"total":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))

	resp = s.do(t, http.MethodPost, "/api/sales", admin, `{"recibido":1,"cambio":0,"metodo_pago":"efectivo"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = s.do(t, http.MethodPost, "/api/sales", admin, `{"total":"diez","recibido":1,"cambio":0,"metodo_pago":"efectivo"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/sales", admin, `{"total":10.001,"recibido":10.001,"cambio":0,"metodo_pago":"efectivo"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/sales/:id/pay-debt
// ──────────────────────────────────────────────────────────────────────────────

func TestPayDebt_FlujoCompleto(t *testing.T) {
	s := newTestServer(t)
	c := s.store.AddCustomer(entity.Customer{Nombre: "Doña Rosa"})
	admin := bearer(t, 1, entity.RoleAdmin)

	body := fmt.Sprintf(`{"total":20000,"recibido":0,"cambio":0,"metodo_pago":"efectivo","cliente_id":%d,"deuda":20000,"items":[]}`, c.ID)
	created := decode[dto.CreateSaleResponse](t, s.do(t, http.MethodPost, "/api/sales", admin, body))
	assert.True(t, created.ClienteActualizado)
	path := fmt.Sprintf("/api/sales/%d/pay-debt", created.VentaID)

	resp := s.do(t, http.MethodPost, path, admin, `{"monto":5000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	paid := decode[dto.PayDebtResponse](t, resp)
	equalDec(t, "5000", paid.PagoRegistrado)
	equalDec(t, "20000", paid.DeudaAnterior)
	equalDec(t, "15000", paid.DeudaActualizada)
	assert.True(t, paid.ClienteActualizado)

	paid = decode[dto.PayDebtResponse](t, s.do(t, http.MethodPost, path, admin, `{"monto":"20000"}`))
	equalDec(t, "15000", paid.PagoRegistrado)
	equalDec(t, "0", paid.DeudaActualizada)

	resp = s.do(t, http.MethodPost, path, admin, `{"monto":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "NO_OUTSTANDING_DEBT", errorCode(t, resp))

	got, _ := s.store.Customer(c.ID)
	equalDec(t, "0", got.SaldoPendiente)
}

func TestPayDebt_Errores(t *testing.T) {
	s := newTestServer(t)
	owner := bearer(t, 7, entity.RoleVendedor)
	created := decode[dto.CreateSaleResponse](t, s.do(t, http.MethodPost, "/api/sales", owner,
		`{"total":3000,"recibido":0,"cambio":0,"metodo_pago":"efectivo","deuda":3000}`))
	path := fmt.Sprintf("/api/sales/%d/pay-debt", created.VentaID)

	resp := s.do(t, http.MethodPost, path, bearer(t, 8, entity.RoleVendedor), `{"monto":100}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodPost, path, owner, `{"monto":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodPost, path, owner, `{"monto":0.004}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = s.do(t, http.MethodPost, "/api/sales/999/pay-debt", owner, `{"monto":100}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/sales/xyz/pay-debt", owner, `{"monto":100}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/sales, /summary, /:id/detail
// ──────────────────────────────────────────────────────────────────────────────

func TestListSales_VendedorVeSoloLoSuyo(t *testing.T) {
	s := newTestServer(t)
	sale := `{"total":100,"recibido":100,"cambio":0,"metodo_pago":"efectivo"}`
	s.do(t, http.MethodPost, "/api/sales", bearer(t, 7, entity.RoleVendedor), sale)
	s.do(t, http.MethodPost, "/api/sales", bearer(t, 8, entity.RoleVendedor), sale)

	mine := decode[[]dto.SaleDTO](t, s.do(t, http.MethodGet, "/api/sales?filtro=today", bearer(t, 7, entity.RoleVendedor), nil))
	require.Len(t, mine, 1)
	assert.Equal(t, int64(7), mine[0].UserID)

	all := decode[[]dto.SaleDTO](t, s.do(t, http.MethodGet, "/api/sales", bearer(t, 1, entity.RoleAdmin), nil))
	assert.Len(t, all, 2)

	resp := s.do(t, http.MethodGet, "/api/sales?filtro=siempre", bearer(t, 1, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListSales_VacioEsArreglo(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/sales", bearer(t, 1, entity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw := decode[[]dto.SaleDTO](t, resp)
	assert.NotNil(t, raw)
	assert.Empty(t, raw)

	lines := decode[[]dto.SaleLineDTO](t, s.do(t, http.MethodGet, "/api/sales/55/detail", bearer(t, 1, entity.RoleAdmin), nil))
	assert.Empty(t, lines)
}

func TestSummary_Endpoint(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProduct("10", "1000")
	admin := bearer(t, 1, entity.RoleAdmin)
	body := fmt.Sprintf(`{"total":5000,"recibido":3000,"cambio":0,"metodo_pago":"efectivo","deuda":2000,
		"items":[{"producto_id":%d,"cantidad":2,"precio":2500}]}`, p.ID)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/sales", admin, body).StatusCode)

	sum := decode[dto.SalesSummaryDTO](t, s.do(t, http.MethodGet, "/api/sales/summary?filtro=month", admin, nil))
	assert.Equal(t, "month", sum.Filtro)
	assert.Equal(t, int64(1), sum.SalesCount)
	equalDec(t, "5000", sum.Revenue)
	equalDec(t, "2000", sum.Cost)
	equalDec(t, "3000", sum.Margin)
	equalDec(t, "2000", sum.OutstandingDebt)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/sales/:id/payments y /movements
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleHistory_AbonosYMovimientos(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProduct("10", "900")
	owner := bearer(t, 7, entity.RoleVendedor)

	body := fmt.Sprintf(`{"total":7500,"recibido":2500,"cambio":0,"metodo_pago":"efectivo","deuda":5000,"items":[{"producto_id":%d,"cantidad":3,"precio":2500}]}`, p.ID)
	created := decode[dto.CreateSaleResponse](t, s.do(t, http.MethodPost, "/api/sales", owner, body))
	base := fmt.Sprintf("/api/sales/%d", created.VentaID)

	resp := s.do(t, http.MethodPost, base+"/pay-debt", owner, `{"monto":2000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payments := decode[[]dto.DebtPaymentDTO](t, s.do(t, http.MethodGet, base+"/payments", owner, nil))
	require.Len(t, payments, 1)
	equalDec(t, "2000", payments[0].MontoPagado)
	equalDec(t, "3000", payments[0].DeudaNueva)

	movements := decode[[]dto.InventoryMovementDTO](t, s.do(t, http.MethodGet, base+"/movements", owner, nil))
	require.Len(t, movements, 1)
	assert.Equal(t, p.ID, movements[0].ProductoID)
	equalDec(t, "-3", movements[0].Cantidad)

	other := bearer(t, 8, entity.RoleVendedor)
	assert.Empty(t, decode[[]dto.DebtPaymentDTO](t, s.do(t, http.MethodGet, base+"/payments", other, nil)))
	assert.Empty(t, decode[[]dto.InventoryMovementDTO](t, s.do(t, http.MethodGet, base+"/movements", other, nil)))

	resp = s.do(t, http.MethodGet, "/api/sales/abc/payments", owner, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

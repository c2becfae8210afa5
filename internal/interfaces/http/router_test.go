package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/application/inventory"
	"github.com/jhoicas/pos-ventas-api/internal/application/permission"
	"github.com/jhoicas/pos-ventas-api/internal/application/sales"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/pos-ventas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-ventas-api/pkg/jwt"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de prueba sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNop()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RecordSale:   sales.NewRecordSaleUseCase(store, inventory.NewLedger(), log),
		ApplyPayment: sales.NewApplyPaymentUseCase(store, log),
		SalesQuery:   sales.NewQueryUseCase(store.Sales(), time.UTC),
		SalesHistory: sales.NewHistoryUseCase(store.Sales(), store.DebtPayments(), store.Movements()),
		Permissions:  permission.NewResolver(store.Permissions(), nil, log),
		DB:           store,
		ServiceName:  "pos-ventas-test",
		JWTSecret:    testJWTSecret,
		Logger:       log,
	})
	return &testServer{app: app, store: store}
}

func bearer(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do lanza la petición; body puede ser nil, string (JSON crudo) o cualquier valor serializable.
func (s *testServer) do(t *testing.T, method, path, auth string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[dto.ErrorResponse](t, resp).Code
}

func equalDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s", want, got.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Health y permisos por petición
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_OK(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[dto.HealthResponse](t, resp)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "up", body.Database)
}

type downDB struct{}

func (downDB) Ping(context.Context) error { return errors.New("sin conexión") }

func TestHealth_BaseCaida(t *testing.T) {
	app := fiber.New()
	app.Get("/health", apphttp.Health("pos", downDB{}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAPI_SinToken(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/sales", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_RolDesconocido(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/sales", bearer(t, 5, "bodeguero"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_ROLE", errorCode(t, resp))
}

type brokenResolver struct{}

func (brokenResolver) Caller(context.Context, entity.Principal) (entity.Caller, error) {
	return entity.Caller{}, errors.New("user_permissions: timeout")
}

// Un fallo leyendo permisos es 500, no 403.
func TestResolvePermissions_ErrorDeLecturaEs500(t *testing.T) {
	app := fiber.New()
	app.Get("/x",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.ResolvePermissions(brokenResolver{}, logger.NewNop()),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", bearer(t, 7, entity.RoleVendedor))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Endpoints de permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestPermissions_MeYActualizacionPorAdmin(t *testing.T) {
	s := newTestServer(t)
	vend := bearer(t, 7, entity.RoleVendedor)

	me := decode[dto.PermissionsResponse](t, s.do(t, http.MethodGet, "/api/permissions/me", vend, nil))
	assert.Equal(t, int64(7), me.UserID)
	assert.Equal(t, entity.DefaultVendedorPermissions(), me.Permissions)

	resp := s.do(t, http.MethodPut, "/api/permissions/7", vend, `{"can_edit_customers":true}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodPut, "/api/permissions/7", bearer(t, 1, entity.RoleAdmin), `{"can_edit_customers":true,"can_create_sales":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.PermissionsResponse](t, resp)
	assert.True(t, updated.Permissions.CanEditCustomers)
	assert.False(t, updated.Permissions.CanCreateSales)
	assert.True(t, updated.Permissions.CanViewSales, "claves ausentes toman el valor por defecto")

	me = decode[dto.PermissionsResponse](t, s.do(t, http.MethodGet, "/api/permissions/me", vend, nil))
	assert.True(t, me.Permissions.CanEditCustomers)

	resp = s.do(t, http.MethodPost, "/api/sales", vend, `{"total":1,"recibido":1,"cambio":0,"metodo_pago":"efectivo","items":[]}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
}

func TestPermissions_UserIDInvalido(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPut, "/api/permissions/abc", bearer(t, 1, entity.RoleAdmin), `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func decimalOf(s string) decimal.Decimal { return decimal.RequireFromString(s) }

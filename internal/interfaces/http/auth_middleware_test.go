package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/pos-ventas-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "pos-ventas-test"
	testExpMin    = 60
)

// ──────────────────────────────────────────────────────────────────────────────
// Cadena AuthMiddleware → ResolvePermissions → RequireRole(admin)
// sobre PUT /api/permissions/:userId
// ──────────────────────────────────────────────────────────────────────────────

func signed(t *testing.T, secret string, userID int64, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, userID, role, testIssuer, expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestPermissionsUpdate_CadenaDeAutorizacion(t *testing.T) {
	cases := []struct {
		name       string
		auth       func(t *testing.T) string
		wantStatus int
		wantCode   string
	}{
		{"sin header", func(*testing.T) string { return "" }, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema basic", func(*testing.T) string { return "Basic dXNlcjpwYXNz" }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token malformado", func(*testing.T) string { return "Bearer token.invalido.aqui" }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token expirado", func(t *testing.T) string { return signed(t, testJWTSecret, 1, entity.RoleAdmin, -1) }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"otro secret", func(t *testing.T) string { return signed(t, "otro-secret", 1, entity.RoleAdmin, testExpMin) }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"user_id cero", func(t *testing.T) string { return signed(t, testJWTSecret, 0, entity.RoleAdmin, testExpMin) }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"sin rol", func(t *testing.T) string { return signed(t, testJWTSecret, 1, "", testExpMin) }, http.StatusForbidden, "UNKNOWN_ROLE"},
		{"rol desconocido", func(t *testing.T) string { return bearer(t, 3, "bodeguero") }, http.StatusForbidden, "UNKNOWN_ROLE"},
		{"vendedor", func(t *testing.T) string { return bearer(t, 9, entity.RoleVendedor) }, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)
			resp := s.do(t, http.MethodPut, "/api/permissions/9", tc.auth(t), `{"can_edit_customers":true}`)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, tc.wantCode, errorCode(t, resp))

			stored, err := s.store.Permissions().GetByUserID(context.Background(), 9)
			require.NoError(t, err)
			assert.Nil(t, stored, "una petición rechazada no guarda permisos")
		})
	}
}

func TestPermissionsUpdate_AdminPasaLaCadena(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPut, "/api/permissions/9", bearer(t, 1, entity.RoleAdmin), `{"can_edit_customers":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[dto.PermissionsResponse](t, resp)
	assert.Equal(t, int64(9), body.UserID)
	assert.True(t, body.Permissions.CanEditCustomers)

	stored, err := s.store.Permissions().GetByUserID(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.CanEditCustomers)
}

// Los claims del token llegan a los handlers: /me responde con el usuario y rol del token.
func TestPermissionsMe_ClaimsDelToken(t *testing.T) {
	s := newTestServer(t)

	me := decode[dto.PermissionsResponse](t, s.do(t, http.MethodGet, "/api/permissions/me", bearer(t, 42, entity.RoleVendedor), nil))
	assert.Equal(t, int64(42), me.UserID)
	assert.Equal(t, entity.RoleVendedor, me.Role)
	assert.Equal(t, entity.DefaultVendedorPermissions(), me.Permissions)

	me = decode[dto.PermissionsResponse](t, s.do(t, http.MethodGet, "/api/permissions/me", bearer(t, 1, entity.RoleAdmin), nil))
	assert.Equal(t, int64(1), me.UserID)
	assert.Equal(t, entity.AllPermissions(), me.Permissions)
}

package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas-api/pkg/jwt"
)

const secret = "jwt-test-secret"

func TestGenerateYParse(t *testing.T) {
	tok, err := jwt.Generate(secret, 42, "vendedor", "pos-ventas", 60)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "vendedor", role)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", 1, "admin", "pos-ventas", 60)
	assert.Error(t, err)
}

func TestParse_Rechazos(t *testing.T) {
	sign := func(t *testing.T, s string, userID int64, exp time.Duration) string {
		t.Helper()
		tok, err := jwt.Generate(s, userID, "admin", "pos-ventas", int(exp/time.Minute))
		require.NoError(t, err)
		return tok
	}
	unsigned := func(t *testing.T) string {
		t.Helper()
		claims := jwt.Claims{
			RegisteredClaims: gojwt.RegisteredClaims{
				Subject:   "1",
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UserID: 1,
			Role:   "admin",
		}
		tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		return tok
	}

	cases := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{"expirado", func(t *testing.T) string { return sign(t, secret, 1, -time.Minute) }},
		{"otro secret", func(t *testing.T) string { return sign(t, "otro-secret", 1, time.Hour) }},
		{"user_id cero", func(t *testing.T) string { return sign(t, secret, 0, time.Hour) }},
		{"alg none", unsigned},
		{"basura", func(*testing.T) string { return "token.invalido.aqui" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := jwt.Parse(secret, tc.token(t))
			assert.Error(t, err)
		})
	}
}

func TestParse_SecretVacio(t *testing.T) {
	tok, err := jwt.Generate(secret, 1, "admin", "pos-ventas", 60)
	require.NoError(t, err)
	_, _, err = jwt.Parse("", tok)
	assert.Error(t, err)
}

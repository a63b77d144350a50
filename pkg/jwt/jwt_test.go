package jwt_test

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-vision/pkg/jwt"
)

const (
	secret = "test-secret-key-for-unit-tests"
	userID = "00000000-0000-0000-0000-000000000001"
)

func signed(t *testing.T, method gojwt.SigningMethod, key any, claims gojwt.Claims) string {
	t.Helper()
	tok, err := gojwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func validClaims() *jwt.Claims {
	now := time.Now()
	return &jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
		},
		WarehouseID: "1",
		Role:        "admin",
	}
}

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := jwt.Generate(secret, userID, "1", "operator", "warehouse-vision", 60)
	require.NoError(t, err)

	c, err := jwt.ParseClaims(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, c.UserID())
	assert.Equal(t, "1", c.WarehouseID)
	assert.Equal(t, "operator", c.Role)
	assert.Equal(t, "warehouse-vision", c.Issuer)

	uid, wid, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, []string{userID, "1", "operator"}, []string{uid, wid, role})
}

func TestGenerate_EntradasInvalidas(t *testing.T) {
	_, err := jwt.Generate("", userID, "1", "admin", "", 60)
	assert.Error(t, err)
	_, err = jwt.Generate(secret, "", "1", "admin", "", 60)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := jwt.Generate(secret, userID, "1", "admin", "", -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := jwt.Generate(secret, userID, "1", "admin", "", 60)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro-secret-completamente-distinto", tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)
}

func TestParse_SoloHS256(t *testing.T) {
	// mismo secreto, otro algoritmo HMAC
	hs512 := signed(t, gojwt.SigningMethodHS512, []byte(secret), validClaims())
	_, err := jwt.ParseClaims(secret, hs512)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	none := signed(t, gojwt.SigningMethodNone, gojwt.UnsafeAllowNoneSignatureType, validClaims())
	_, err = jwt.ParseClaims(secret, none)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_ClaimsObligatorios(t *testing.T) {
	sinExp := validClaims()
	sinExp.ExpiresAt = nil
	_, err := jwt.ParseClaims(secret, signed(t, gojwt.SigningMethodHS256, []byte(secret), sinExp))
	assert.ErrorIs(t, err, gojwt.ErrTokenRequiredClaimMissing)

	sinSub := validClaims()
	sinSub.Subject = ""
	_, err = jwt.ParseClaims(secret, signed(t, gojwt.SigningMethodHS256, []byte(secret), sinSub))
	assert.True(t, errors.Is(err, jwt.ErrInvalidToken))

	// rol ausente es válido aquí; RequireRole lo rechaza más arriba
	sinRol := validClaims()
	sinRol.Role = ""
	c, err := jwt.ParseClaims(secret, signed(t, gojwt.SigningMethodHS256, []byte(secret), sinRol))
	require.NoError(t, err)
	assert.Empty(t, c.Role)
}

func TestParse_SecretVacio(t *testing.T) {
	_, err := jwt.ParseClaims("", "x.y.z")
	assert.Error(t, err)
}

package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-vision/internal/application/auth"
	"github.com/jhoicas/warehouse-vision/internal/domain"
	"github.com/jhoicas/warehouse-vision/pkg/jwt"
)

var cfg = auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 30, Issuer: "warehouse-vision-test"}

func TestIssue_TokenConBodegaYRol(t *testing.T) {
	tok, err := auth.NewTokenUseCase("bodega-1", cfg).Issue(" u-7 ", auth.RoleOperator)
	require.NoError(t, err)

	userID, warehouseID, role, err := jwt.Parse(cfg.Secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-7", userID)
	assert.Equal(t, "bodega-1", warehouseID)
	assert.Equal(t, auth.RoleOperator, role)
}

func TestIssue_Validaciones(t *testing.T) {
	uc := auth.NewTokenUseCase("bodega-1", cfg)

	_, err := uc.Issue("", auth.RoleAdmin)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Issue("u-1", "superuser")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "role", ve.Field)

	_, err = auth.NewTokenUseCase("bodega-1", auth.JWTConfig{Secret: "x"}).Issue("u-1", auth.RoleAdmin)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestIssue_SinSecreto(t *testing.T) {
	_, err := auth.NewTokenUseCase("bodega-1", auth.JWTConfig{ExpMinutes: 5}).Issue("u-1", auth.RoleAdmin)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
}

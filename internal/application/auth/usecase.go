package auth

import (
	"fmt"
	"strings"

	"github.com/jhoicas/warehouse-vision/internal/domain"
	"github.com/jhoicas/warehouse-vision/pkg/jwt"
)

// Roles que puede llevar un token.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenUseCase emite tokens para la bodega que atiende la instancia.
// No hay almacén de credenciales: quien tenga acceso al secreto emite tokens.
type TokenUseCase struct {
	warehouseID string
	jwtCfg      JWTConfig
}

// NewTokenUseCase construye el emisor.
func NewTokenUseCase(warehouseID string, jwtCfg JWTConfig) *TokenUseCase {
	return &TokenUseCase{warehouseID: warehouseID, jwtCfg: jwtCfg}
}

// Issue firma un token para userID con el rol indicado.
func (uc *TokenUseCase) Issue(userID, role string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", domain.NewValidationError("user_id", "es requerido")
	}
	switch role {
	case RoleAdmin, RoleOperator:
	default:
		return "", domain.NewValidationError("role", fmt.Sprintf("rol desconocido %q", role))
	}
	if uc.jwtCfg.ExpMinutes <= 0 {
		return "", domain.NewValidationError("expiration", "debe ser positiva")
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, userID, uc.warehouseID, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return token, nil
}

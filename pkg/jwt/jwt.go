// Package jwt emite y valida los tokens HS256 de la API. El usuario viaja en sub,
// la bodega y el rol en claims propios para que el middleware decida sin consultar la DB.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken envuelve todo rechazo de Parse.
var ErrInvalidToken = errors.New("jwt: token inválido")

// leeway tolerancia de reloj entre emisor y API.
const leeway = 30 * time.Second

var signingMethod = jwt.SigningMethodHS256

// Claims claims registrados más bodega y rol. El usuario es Subject.
type Claims struct {
	jwt.RegisteredClaims
	WarehouseID string `json:"warehouse_id"`
	Role        string `json:"role,omitempty"` // "admin" | "operator"
}

// UserID usuario dueño del token.
func (c *Claims) UserID() string { return c.Subject }

// Generate firma un token para userID en warehouseID que vence en expMinutes.
func Generate(secret, userID, warehouseID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", errors.New("jwt: secret vacío")
	}
	if userID == "" {
		return "", errors.New("jwt: userID vacío")
	}
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		WarehouseID: warehouseID,
		Role:        role,
	}
	return jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(secret))
}

// ParseClaims valida firma, algoritmo, vencimiento y sujeto.
// Solo se acepta HS256; un token sin exp se rechaza.
func ParseClaims(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("jwt: secret vacío")
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(leeway),
	)
	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: sin sujeto", ErrInvalidToken)
	}
	return claims, nil
}

// Parse atajo de ParseClaims para el middleware.
func Parse(secret, tokenString string) (userID, warehouseID, role string, err error) {
	c, err := ParseClaims(secret, tokenString)
	if err != nil {
		return "", "", "", err
	}
	return c.UserID(), c.WarehouseID, c.Role, nil
}

// token emite un JWT para probar la API con AUTH_ENABLED=true.
//
// Uso: go run ./cmd/token <user_id> [admin|operator]
// Firma con JWT_SECRET para la bodega WAREHOUSE_ID. Rol por defecto: operator.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/warehouse-vision/internal/application/auth"
	"github.com/jhoicas/warehouse-vision/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: token <user_id> [admin|operator]")
		os.Exit(2)
	}
	role := auth.RoleOperator
	if len(os.Args) > 2 {
		role = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	tok, err := auth.NewTokenUseCase(cfg.App.WarehouseID, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}).Issue(os.Args[1], role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Emitir token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

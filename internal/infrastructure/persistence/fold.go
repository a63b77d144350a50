package persistence

import (
	"database/sql/driver"
	"fmt"

	"modernc.org/sqlite"

	domaininv "github.com/jhoicas/warehouse-vision/internal/domain/inventory"
)

// foldFunc nombre de la función SQL registrada en SQLite. LOWER de SQLite solo pliega ASCII,
// así que la búsqueda usa fold(col) con la misma regla que se aplica a la consulta.
const foldFunc = "fold"

func init() {
	// Registro global del driver: aplica a toda conexión abierta después.
	if err := sqlite.RegisterDeterministicScalarFunction(foldFunc, 1, sqliteFold); err != nil {
		panic(fmt.Sprintf("registrar función %s: %v", foldFunc, err))
	}
}

func sqliteFold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return domaininv.Fold(v), nil
	case []byte:
		return domaininv.Fold(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: tipo no soportado %T", foldFunc, v)
	}
}

// foldExpr expresión SQL que pliega col a minúsculas según el dialecto.
// PostgreSQL ya aplica reglas Unicode en LOWER.
func foldExpr(d Dialect, col string) string {
	if d == DialectSQLite {
		return foldFunc + "(" + col + ")"
	}
	return "LOWER(" + col + ")"
}

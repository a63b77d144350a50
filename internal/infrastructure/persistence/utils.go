package persistence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único en cualquiera de los dos motores.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// sqliteTimeLayout ancho fijo para que el orden lexicográfico coincida con el cronológico.
const sqliteTimeLayout = "2006-01-02 15:04:05.000000000"

// timeArg adapta un instante al parámetro que espera el motor.
func timeArg(d Dialect, t time.Time) any {
	if d == DialectSQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t.UTC()
}

// dateArg adapta una fecha calendario; nil se persiste como NULL.
func dateArg(d Dialect, t *time.Time) any {
	if t == nil {
		return nil
	}
	if d == DialectSQLite {
		return t.UTC().Format(entity.DateLayout)
	}
	return entity.DateOf(*t)
}

// nullTime acepta time.Time (pgx, modernc con tipos declarados) o texto (modernc sin conversión).
type nullTime struct {
	Time  time.Time
	Valid bool
}

var timeLayouts = []string{
	sqliteTimeLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	entity.DateLayout,
}

func (n *nullTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case time.Time:
		n.Time, n.Valid = v.UTC(), true
		return nil
	case string:
		return n.parse(v)
	case []byte:
		return n.parse(string(v))
	default:
		return fmt.Errorf("nullTime: tipo no soportado %T", src)
	}
}

func (n *nullTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			n.Time, n.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("nullTime: formato no reconocido %q", s)
}

// ptr devuelve un puntero a la fecha si es válida.
func (n nullTime) ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

// escapeLike escapa comodines de LIKE con "\".
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

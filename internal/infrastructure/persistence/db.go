// Package persistence implementa el Storage Gateway sobre database/sql con dos dialectos:
// SQLite embebido (modernc.org/sqlite, sin cgo) y PostgreSQL (pgx pool vía stdlib).
//
// Las consultas se escriben con placeholders "?" y se reescriben a "$n" para PostgreSQL.
// Con SQLite el pool se limita a una conexión: dentro de una transacción solo debe usarse el Tx.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // driver sqlite puro Go

	"github.com/jhoicas/warehouse-vision/pkg/config"
)

// Dialect motor SQL subyacente.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Querier abstrae *DB y *Tx para que los repositorios funcionen dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row
	Dialect() Dialect
}

var (
	_ Querier = (*DB)(nil)
	_ Querier = (*Tx)(nil)
)

// DB conexión compartida de la aplicación. Se crea una vez en main y se cierra al apagar.
type DB struct {
	sql     *sql.DB
	pool    *pgxpool.Pool // solo PostgreSQL
	dialect Dialect
}

// Open abre la base de datos según cfg.Driver.
func Open(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &DB{sql: stdlib.OpenDBFromPool(pool), pool: pool, dialect: DialectPostgres}, nil
	case config.DriverSQLite, "":
		return OpenSQLite(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("persistence: driver desconocido %q", cfg.Driver)
	}
}

// OpenSQLite abre (o crea) una base SQLite en path. ":memory:" crea una base efímera
// que vive mientras viva la única conexión del pool.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		path = ":memory:"
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &DB{sql: db, dialect: DialectSQLite}, nil
}

// Dialect devuelve el motor en uso.
func (db *DB) Dialect() Dialect { return db.dialect }

// Ping verifica la conexión.
func (db *DB) Ping(ctx context.Context) error { return db.sql.PingContext(ctx) }

// Close libera la conexión (y el pool pgx si aplica).
func (db *DB) Close() error {
	err := db.sql.Close()
	if db.pool != nil {
		db.pool.Close()
	}
	return err
}

func (db *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.sql.ExecContext(ctx, rebind(db.dialect, query), args...)
}

func (db *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.sql.QueryContext(ctx, rebind(db.dialect, query), args...)
}

func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.sql.QueryRowContext(ctx, rebind(db.dialect, query), args...)
}

// Begin inicia una transacción.
func (db *DB) Begin(ctx context.Context) (*Tx, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, dialect: db.dialect}, nil
}

// Tx transacción en curso.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *Tx) Dialect() Dialect { return t.dialect }

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, rebind(t.dialect, query), args...)
}

func (t *Tx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, rebind(t.dialect, query), args...)
}

func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, rebind(t.dialect, query), args...)
}

// Commit confirma la transacción.
func (t *Tx) Commit() error { return t.tx.Commit() }

// Rollback deshace la transacción; es inocuo después de Commit.
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// rebind reescribe los "?" como "$1..$n" para PostgreSQL. Las consultas del paquete
// no usan "?" dentro de literales.
func rebind(d Dialect, query string) string {
	if d != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

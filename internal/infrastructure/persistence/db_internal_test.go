package persistence

import (
	"context"
	"database/sql"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-vision/pkg/config"
)

func TestRebind(t *testing.T) {
	q := `SELECT * FROM locations WHERE warehouse_id = ? AND zona = ? LIMIT ?`
	assert.Equal(t, q, rebind(DialectSQLite, q))
	assert.Equal(t,
		`SELECT * FROM locations WHERE warehouse_id = $1 AND zona = $2 LIMIT $3`,
		rebind(DialectPostgres, q))
}

func TestSplitStatements_IgnoraComentarios(t *testing.T) {
	stmts := splitStatements("-- encabezado\nCREATE TABLE a (x INT);\n\n-- otro\nCREATE INDEX i ON a (x);\n")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a (x)"}, stmts)
}

func TestNullTime_Formatos(t *testing.T) {
	want := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	for _, src := range []any{
		want,
		"2026-03-10 08:30:00.000000000",
		"2026-03-10T08:30:00Z",
		[]byte("2026-03-10 08:30:00"),
	} {
		var n nullTime
		require.NoError(t, n.Scan(src), "%v", src)
		assert.True(t, n.Valid)
		assert.True(t, n.Time.Equal(want), "%v", src)
	}

	var d nullTime
	require.NoError(t, d.Scan("2026-03-10"))
	assert.True(t, d.Time.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))

	var null nullTime
	require.NoError(t, null.Scan(nil))
	assert.False(t, null.Valid)
	assert.Nil(t, null.ptr())

	assert.Error(t, (&nullTime{}).Scan(42))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_a\\b`, escapeLike(`50%_a\b`))
}

func TestIPv4First(t *testing.T) {
	ips := []net.IP{net.ParseIP("2001:db8::1"), net.ParseIP("10.0.0.5"), net.ParseIP("::1"), net.ParseIP("10.0.0.6")}
	assert.Equal(t, []string{"10.0.0.5", "10.0.0.6", "2001:db8::1", "::1"}, ipv4First(ips))
	assert.Empty(t, ipv4First(nil))
}

func TestPoolConfig(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@db.interna:6543/wh?sslmode=disable", MaxConns: 4}, net.DefaultResolver)
	require.NoError(t, err)
	assert.Equal(t, "db.interna", pc.ConnConfig.Host)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	assert.Equal(t, int32(4), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
	assert.NotNil(t, pc.ConnConfig.LookupFunc)

	// sin DATABASE_URL se usan los campos sueltos; tope por defecto
	pc, err = poolConfig(config.DBConfig{Host: "localhost", Port: 5432, User: "app", DBName: "wh", SSLMode: "disable"}, net.DefaultResolver)
	require.NoError(t, err)
	assert.Equal(t, "wh", pc.ConnConfig.Database)
	assert.Equal(t, int32(10), pc.MaxConns)

	_, err = poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/wh"}, net.DefaultResolver)
	assert.Error(t, err)
}

func TestFoldExpr(t *testing.T) {
	assert.Equal(t, "fold(i.sku)", foldExpr(DialectSQLite, "i.sku"))
	assert.Equal(t, "LOWER(i.sku)", foldExpr(DialectPostgres, "i.sku"))
}

func TestSQLiteFold_Unicode(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var got string
	require.NoError(t, db.QueryRow(ctx, `SELECT fold(?)`, "JAMÓN Ñandú ÁRBOL").Scan(&got))
	assert.Equal(t, "jamón ñandú árbol", got)

	// LOWER de SQLite deja intactas las letras no ASCII
	require.NoError(t, db.QueryRow(ctx, `SELECT LOWER(?)`, "JAMÓN").Scan(&got))
	assert.Equal(t, "jamÓn", got)

	var null sql.NullString
	require.NoError(t, db.QueryRow(ctx, `SELECT fold(NULL)`).Scan(&null))
	assert.False(t, null.Valid)
}

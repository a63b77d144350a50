package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-vision/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "1", cfg.App.WarehouseID)
	assert.Equal(t, 3001, cfg.HTTP.Port)
	assert.False(t, cfg.JWT.Enabled)
	assert.Equal(t, 100000, cfg.Setup.MaxLocations)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, "none", cfg.Archive.Driver)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("WAREHOUSE_ID", "bodega-norte")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SEED_ON_START", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "bodega-norte", cfg.App.WarehouseID)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Setup.SeedOnStart)
}

func TestLoad_AuthSinSecret_Error(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_MaxConnsInvalido_Error(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "0")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ArchivoS3SinBucket_Error(t *testing.T) {
	t.Setenv("ARCHIVE_DRIVER", "s3")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "wh", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/wh?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}

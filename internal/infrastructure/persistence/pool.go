package persistence

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/warehouse-vision/pkg/config"
)

// NewPool abre el pool pgx y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg, net.DefaultResolver)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// poolConfig arma la configuración del pool sin abrir conexiones.
func poolConfig(cfg config.DBConfig, r *net.Resolver) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	// Contenedores sin ruta IPv6: se intentan primero las direcciones IPv4.
	pc.ConnConfig.LookupFunc = lookupIPv4First(r)

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}
	pc.MaxConns = int32(maxConns)
	pc.MinConns = 1
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute
	return pc, nil
}

// lookupIPv4First resuelve el host y ordena las direcciones IPv4 antes que las IPv6.
// pgconn prueba las direcciones en orden, así que IPv6 queda como respaldo.
func lookupIPv4First(r *net.Resolver) pgconn.LookupFunc {
	return func(ctx context.Context, host string) ([]string, error) {
		ips, err := r.LookupIP(ctx, "ip", host)
		if err != nil {
			return nil, err
		}
		return ipv4First(ips), nil
	}
}

func ipv4First(ips []net.IP) []string {
	out := make([]string, 0, len(ips))
	for _, ip := range ips {
		if ip.To4() != nil {
			out = append(out, ip.String())
		}
	}
	for _, ip := range ips {
		if ip.To4() == nil {
			out = append(out, ip.String())
		}
	}
	return out
}

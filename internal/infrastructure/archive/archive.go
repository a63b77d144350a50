// Package archive guarda los snapshots de inventario previos a un reset forzado.
// Backends: sistema de archivos local o un bucket S3 compatible (AWS, MinIO).
package archive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jhoicas/warehouse-vision/internal/application/setup"
	"github.com/jhoicas/warehouse-vision/pkg/config"
)

var (
	_ setup.Archiver = (*FSStore)(nil)
	_ setup.Archiver = (*S3Store)(nil)
)

// Open construye el backend configurado. Con driver "none" devuelve (nil, nil): el reset no archiva.
func Open(ctx context.Context, cfg config.ArchiveConfig) (setup.Archiver, error) {
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "fs":
		store, err := NewFSStore(cfg.FSRoot)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "s3":
		store, err := NewS3Store(ctx, S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PathStyle:       cfg.S3PathStyle,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("archive: driver desconocido %q", cfg.Driver)
	}
}

// sanitizeKey impide claves vacías, absolutas o que escapen de la raíz.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("archive: clave vacía")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return "", fmt.Errorf("archive: clave inválida %q", key)
	}
	return filepath.ToSlash(filepath.Clean(key)), nil
}

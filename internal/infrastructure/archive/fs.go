package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FSStore escribe cada snapshot como archivo bajo root. Nunca sobrescribe.
type FSStore struct {
	root string
}

// NewFSStore crea root si no existe.
func NewFSStore(root string) (*FSStore, error) {
	if root == "" {
		root = "./archive"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("archive: crear %s: %w", root, err)
	}
	return &FSStore{root: root}, nil
}

// Put escribe body en root/key y devuelve la ruta final.
func (s *FSStore) Put(ctx context.Context, key string, body []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.root, filepath.FromSlash(k))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("archive: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("archive: %w", err)
	}
	if _, err := f.Write(body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("archive: escribir %s: %w", k, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("archive: %w", err)
	}
	return path, nil
}

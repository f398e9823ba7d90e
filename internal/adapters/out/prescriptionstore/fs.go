// Package prescriptionstore persists uploaded prescription documents on the
// local filesystem and hands back opaque references.
package prescriptionstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mediflow/internal/core/domain/model/kernel"
)

// FSStore implements ports.ArtifactStorage over a directory.
type FSStore struct {
	root string
}

// NewFSStore creates a store rooted at dir, creating it if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{root: dir}, nil
}

// Store writes the document under a per-order directory and returns its path
// relative to the store root. Re-uploads get distinct filenames, so a
// reference handed out earlier never changes content underneath its holder.
func (s *FSStore) Store(_ context.Context, orderID kernel.UUID, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.root, orderID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(filename))
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", err
	}

	return filepath.Join(orderID.String(), name), nil
}

// sanitizeFilename keeps the base name only and strips path separators, so a
// crafted filename cannot escape the store root.
func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, string(os.PathSeparator), "_")
	if base == "." || base == ".." || base == "" {
		return "upload"
	}
	return base
}

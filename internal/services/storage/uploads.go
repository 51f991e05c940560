package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadStore persists uploaded images under a server-controlled directory.
// Stored names are prefixed with a generated UUID so uploads never collide
// and the client-supplied filename cannot overwrite existing files.
type UploadStore struct {
	dir string
}

// NewUploadStore creates the uploads directory if needed.
func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &UploadStore{dir: dir}, nil
}

// Save writes the uploaded bytes under a new unique name derived from the
// declared filename and returns that stored name.
func (s *UploadStore) Save(originalName string, data []byte) (string, error) {
	name := uuid.New().String() + "_" + SanitizeFilename(originalName)
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return name, nil
}

// Path resolves a stored name to its location on disk. Only the base name is
// used, so a crafted name cannot escape the uploads directory.
func (s *UploadStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Remove deletes a stored upload. Missing files are not an error.
func (s *UploadStore) Remove(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// Dir returns the uploads directory.
func (s *UploadStore) Dir() string {
	return s.dir
}

// SanitizeFilename strips path separators and any character outside
// [A-Za-z0-9._-] from a client-supplied filename.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return "upload"
	}
	return cleaned
}

// Package uploads stores item photos on disk under unique names.
package uploads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes processed images into a directory and hands out the
// public URL path they are served under.
type Store struct {
	Dir string
}

// URLPrefix is the path uploaded files are served under.
const URLPrefix = "/uploads/"

// NewStore creates the uploads directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save writes data under a random filename with an extension derived
// from the MIME type and returns the URL path for the stored file.
func (s *Store) Save(data []byte, mime string) (string, error) {
	ext, err := ExtensionForMIME(mime)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.Dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	return URLPrefix + name, nil
}

// Open returns the on-disk path for a stored file name, refusing names
// that escape the uploads directory.
func (s *Store) Open(name string) (string, error) {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid upload name %q", name)
	}
	path := filepath.Join(s.Dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	return path, nil
}

// ExtensionForMIME maps an image MIME type to a file extension.
func ExtensionForMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	}
	return "", fmt.Errorf("no extension for MIME type %q", mime)
}

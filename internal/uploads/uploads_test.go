package uploads

import (
	"os"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestSaveAndOpen(t *testing.T) {
	s := newTestStore(t)

	url, err := s.Save([]byte("fake jpeg data"), "image/jpeg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, URLPrefix) {
		t.Errorf("expected URL prefixed with %s, got %s", URLPrefix, url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("expected .jpg extension, got %s", url)
	}

	name := strings.TrimPrefix(url, URLPrefix)
	path, err := s.Open(name)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "fake jpeg data" {
		t.Errorf("stored data mismatch: %q", data)
	}
}

func TestSaveUniqueNames(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Save([]byte("a"), "image/png")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := s.Save([]byte("b"), "image/png")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first == second {
		t.Errorf("expected unique filenames, both were %s", first)
	}
}

func TestSaveUnknownMIME(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save([]byte("data"), "application/pdf"); err == nil {
		t.Error("expected error for non-image MIME type")
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"", "../secret", "a/b.jpg", `a\b.jpg`, "..", "foo/../bar.jpg"} {
		if _, err := s.Open(name); err == nil {
			t.Errorf("Open(%q): expected error", name)
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Open("nonexistent.jpg"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtensionForMIME(t *testing.T) {
	tests := []struct {
		mime string
		ext  string
	}{
		{"image/jpeg", ".jpg"},
		{"image/png", ".png"},
		{"image/gif", ".gif"},
		{"image/webp", ".webp"},
	}
	for _, tt := range tests {
		ext, err := ExtensionForMIME(tt.mime)
		if err != nil {
			t.Errorf("ExtensionForMIME(%q): %v", tt.mime, err)
		}
		if ext != tt.ext {
			t.Errorf("ExtensionForMIME(%q) = %s, want %s", tt.mime, ext, tt.ext)
		}
	}

	if _, err := ExtensionForMIME("text/plain"); err == nil {
		t.Error("expected error for unmapped MIME type")
	}
}

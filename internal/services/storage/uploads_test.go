package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"lesion.jpg", "lesion.jpg"},
		{"my photo.jpg", "my_photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{`..\..\windows\system32`, "system32"},
		{"über-café.png", "_ber-caf_.png"},
		{"...", "upload"},
		{"", "upload"},
	}

	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUploadStore_SaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	first, err := store.Save("lesion.jpg", []byte("one"))
	if err != nil {
		t.Fatalf("Failed to save upload: %v", err)
	}
	second, err := store.Save("lesion.jpg", []byte("two"))
	if err != nil {
		t.Fatalf("Failed to save upload: %v", err)
	}

	if first == second {
		t.Error("Two uploads with the same declared name must not collide")
	}
	if !strings.HasSuffix(first, "_lesion.jpg") {
		t.Errorf("Stored name should keep the sanitized original: %s", first)
	}

	data, err := os.ReadFile(store.Path(first))
	if err != nil {
		t.Fatalf("Failed to read stored upload: %v", err)
	}
	if string(data) != "one" {
		t.Errorf("Stored bytes differ: %q", data)
	}
}

func TestUploadStore_PathStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewUploadStore(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	path := store.Path("../../secret.txt")
	if filepath.Dir(path) != dir {
		t.Errorf("Path escaped uploads directory: %s", path)
	}
}

func TestUploadStore_RemoveIsIdempotent(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	name, err := store.Save("lesion.jpg", []byte("data"))
	if err != nil {
		t.Fatalf("Failed to save upload: %v", err)
	}

	if err := store.Remove(name); err != nil {
		t.Fatalf("Failed to remove upload: %v", err)
	}
	if _, err := os.Stat(store.Path(name)); !os.IsNotExist(err) {
		t.Error("Upload still exists after Remove")
	}
	if err := store.Remove(name); err != nil {
		t.Errorf("Removing a missing upload should not fail: %v", err)
	}
}

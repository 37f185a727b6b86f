package media_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"revive/internal/media"
)

func TestSaveImageNames(t *testing.T) {
	s, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(t.TempDir(), "photo.jpeg")
	if err := os.WriteFile(src, []byte("bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	name, err := s.SaveImage(src, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(name, "item_7_") || !strings.HasSuffix(name, ".jpeg") {
		t.Fatalf("bad name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	if err != nil || string(data) != "bytes" {
		t.Fatalf("copy failed: %q %v", data, err)
	}
}

func TestSaveImageDefaultExtension(t *testing.T) {
	s, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(t.TempDir(), "noext")
	if err := os.WriteFile(src, []byte("bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	name, err := s.SaveImage(src, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Fatalf("want .jpg fallback, got %q", name)
	}
}

func TestRemoveBestEffort(t *testing.T) {
	s, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// Neither a missing file nor an empty name may panic or error out.
	s.Remove("does-not-exist.jpg")
	s.Remove("")
}

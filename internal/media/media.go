// Package media stores item images on disk.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

type Store struct {
	dir string
}

// NewStore ensures dir exists and returns a store rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// SaveImage copies the uploaded file at src into the store under a name
// derived from the item id and the current time: item_<id>_<ts><ext>, with
// .jpg as the extension when src has none. Returns the stored file name.
func (s *Store) SaveImage(src string, itemID int) (string, error) {
	ext := filepath.Ext(src)
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("item_%d_%s%s", itemID, time.Now().Format("20060102_150405"), ext)

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening image source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("copying image: %w", err)
	}
	return name, nil
}

// Remove deletes a stored image. Best effort: a missing file or a filesystem
// error is ignored, record deletion must never be blocked by it.
func (s *Store) Remove(name string) {
	if name == "" {
		return
	}
	_ = os.Remove(filepath.Join(s.dir, name))
}

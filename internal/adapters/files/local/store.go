package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"cat-adoption/internal/ports/images"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Store guarda imágenes en un directorio plano del filesystem.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

var _ images.Store = (*Store)(nil)

// Save escribe el archivo como <uuid>_<nombre saneado> para que dos gatos
// con el mismo nombre de foto no se pisen.
func (s *Store) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString()
	if safe := SanitizeFilename(originalName); safe != "" {
		name += "_" + safe
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close image: %w", err)
	}
	return name, nil
}

func (s *Store) Open(name string) (io.ReadSeekCloser, error) {
	p, ok := s.path(name)
	if !ok {
		return nil, images.ErrNotFound
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, images.ErrNotFound
		}
		return nil, err
	}
	st, err := f.Stat()
	if err != nil || st.IsDir() {
		_ = f.Close()
		return nil, images.ErrNotFound
	}
	return f, nil
}

func (s *Store) Remove(name string) error {
	p, ok := s.path(name)
	if !ok {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// path rechaza nombres con separadores o que no salgan de SanitizeFilename.
func (s *Store) path(name string) (string, bool) {
	if name == "" || name != SanitizeFilename(name) {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}

// SanitizeFilename deja solo [A-Za-z0-9._-], sin puntos iniciales.
// "../../etc/passwd" -> "passwd", "mi gato.jpg" -> "mi_gato.jpg".
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	name = unsafeChars.ReplaceAllString(name, "_")
	return strings.TrimRight(strings.TrimLeft(name, "._"), "_")
}

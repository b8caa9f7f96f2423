package images

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("image not found")

// Store guarda los archivos de imagen subidos. Los nombres devueltos por Save
// son únicos y seguros para usar como path plano.
type Store interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Open(name string) (io.ReadSeekCloser, error)
	// Remove no falla si el archivo ya no existe.
	Remove(name string) error
}

package cats

import "context"

// Repository persiste gatos y sus imágenes. Cada operación es atómica:
// commit completo o rollback.
type Repository interface {
	// Create inserta el gato y una fila por imagen; devuelve el id asignado.
	Create(ctx context.Context, c Cat) (int64, error)
	List(ctx context.Context) ([]Cat, error)
	GetByID(ctx context.Context, id int64) (Cat, error)
	// Delete borra el gato (cascade a sus imágenes) y devuelve los nombres de archivo que tenía.
	Delete(ctx context.Context, id int64) ([]string, error)
}

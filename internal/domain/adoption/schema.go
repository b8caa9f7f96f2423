package adoption

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Schema es la lista ordenada de columnas que espera el clasificador.
// Se carga una vez al arrancar y no expone operaciones de mutación.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema valida y copia las columnas.
func NewSchema(columns []string) (*Schema, error) {
	if len(columns) == 0 {
		return nil, errors.New("schema is empty")
	}

	cols := make([]string, len(columns))
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("schema column %d is empty", i)
		}
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("schema column %q is duplicated", c)
		}
		cols[i] = c
		index[c] = i
	}

	return &Schema{columns: cols, index: index}, nil
}

// LoadSchema lee el schema persistido por el trainer (array JSON de strings).
func LoadSchema(path string) (*Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Err: err}
	}

	var columns []string
	if err := json.Unmarshal(b, &columns); err != nil {
		return nil, &SchemaLoadError{Path: path, Err: fmt.Errorf("decode schema: %w", err)}
	}

	s, err := NewSchema(columns)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Err: err}
	}
	return s, nil
}

// SaveSchema persiste las columnas en el formato que consume LoadSchema.
func SaveSchema(path string, columns []string) error {
	if _, err := NewSchema(columns); err != nil {
		return err
	}
	b, err := json.MarshalIndent(columns, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}

func (s *Schema) Len() int { return len(s.columns) }

// Columns devuelve una copia; el orden es el del entrenamiento.
func (s *Schema) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Index devuelve la posición de la columna o -1.
func (s *Schema) Index(column string) int {
	i, ok := s.index[column]
	if !ok {
		return -1
	}
	return i
}

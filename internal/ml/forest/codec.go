package forest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const formatVersion = 1

type document struct {
	Version  int      `json:"version"`
	Features int      `json:"n_features"`
	Columns  []string `json:"columns,omitempty"`
	Trees    []Tree   `json:"trees"`
}

// Encode escribe el bosque como JSON.
func (f *Forest) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(document{
		Version:  formatVersion,
		Features: f.features,
		Columns:  f.columns,
		Trees:    f.trees,
	})
}

// Decode lee y valida un bosque serializado con Encode.
func Decode(r io.Reader) (*Forest, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode forest: %w", err)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("unsupported forest version %d", doc.Version)
	}
	f, err := New(doc.Features, doc.Trees)
	if err != nil {
		return nil, err
	}
	if len(doc.Columns) > 0 {
		if err := f.SetColumns(doc.Columns); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// SetColumns asocia los nombres de columna del entrenamiento (uno por feature).
func (f *Forest) SetColumns(columns []string) error {
	if len(columns) != f.features {
		return fmt.Errorf("forest has %d features, got %d column names", f.features, len(columns))
	}
	f.columns = append([]string(nil), columns...)
	return nil
}

// Columns devuelve una copia de los nombres de columna, o nil si el artefacto no los trae.
func (f *Forest) Columns() []string {
	if len(f.columns) == 0 {
		return nil
	}
	return append([]string(nil), f.columns...)
}

// New arma un bosque a partir de árboles ya construidos (validados).
func New(features int, trees []Tree) (*Forest, error) {
	if features <= 0 {
		return nil, fmt.Errorf("invalid n_features %d", features)
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}
	for t := range trees {
		if err := validateTree(trees[t], features); err != nil {
			return nil, fmt.Errorf("tree %d: %w", t, err)
		}
	}
	return &Forest{features: features, trees: trees}, nil
}

// validateTree garantiza que predict termina: hijos dentro de rango y con índice mayor al padre.
func validateTree(t Tree, features int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("no nodes")
	}
	for i, n := range t.Nodes {
		if n.IsLeaf() {
			if n.Value < 0 || n.Value > 1 {
				return fmt.Errorf("node %d: leaf value %v out of [0,1]", i, n.Value)
			}
			continue
		}
		if n.Feature >= features {
			return fmt.Errorf("node %d: feature %d out of range", i, n.Feature)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

// SaveFile persiste el bosque, creando el directorio si hace falta.
func (f *Forest) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Encode(out); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func LoadFile(path string) (*Forest, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return Decode(in)
}

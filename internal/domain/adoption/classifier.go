package adoption

import (
	"fmt"

	"cat-adoption/internal/ml/forest"
)

// Classifier es el modelo entrenado, opaco para el servicio.
// Las implementaciones son de solo lectura tras la carga y seguras para uso concurrente.
// PredictProba entra en pánico si len(vec) != NumFeatures(): eso es drift de schema, no un error de input.
type Classifier interface {
	PredictProba(vec []float64) float64
	NumFeatures() int
}

// LoadClassifier carga el bosque serializado por el trainer.
func LoadClassifier(path string) (Classifier, error) {
	f, err := forest.LoadFile(path)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Err: err}
	}
	return f, nil
}

// columnNamer lo implementan los clasificadores que guardan los nombres de columna del entrenamiento.
type columnNamer interface {
	Columns() []string
}

// CheckCompatible falla si el clasificador no fue entrenado con este schema:
// misma cantidad de features y, si el artefacto trae nombres, mismo orden.
func CheckCompatible(schema *Schema, clf Classifier) error {
	if clf.NumFeatures() != schema.Len() {
		return &SchemaLoadError{
			Path: "classifier",
			Err:  fmt.Errorf("classifier expects %d features, schema has %d columns", clf.NumFeatures(), schema.Len()),
		}
	}

	named, ok := clf.(columnNamer)
	if !ok {
		return nil
	}
	cols := named.Columns()
	if len(cols) == 0 {
		return nil
	}
	for i, want := range schema.Columns() {
		if cols[i] != want {
			return &SchemaLoadError{
				Path: "classifier",
				Err:  fmt.Errorf("column %d: classifier trained on %q, schema has %q", i, cols[i], want),
			}
		}
	}
	return nil
}

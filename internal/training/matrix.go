package training

import (
	"slices"

	"cat-adoption/internal/domain/adoption"
)

// Dataset es la matriz de entrenamiento ya alineada a su schema.
type Dataset struct {
	Schema *adoption.Schema
	X      [][]float64
	Y      []int
}

// DeriveColumns arma el FeatureSchema: age_days y luego, por cada campo categórico
// en orden fijo, <field>_<value> para los valores observados ordenados.
func DeriveColumns(examples []Example) []string {
	seen := make(map[string]map[string]struct{}, len(adoption.CategoricalFields))
	for _, f := range adoption.CategoricalFields {
		seen[f] = map[string]struct{}{}
	}
	for _, ex := range examples {
		for field, v := range ex.Input.Categories() {
			seen[field][v] = struct{}{}
		}
	}

	cols := []string{adoption.FieldAgeDays}
	for _, field := range adoption.CategoricalFields {
		values := make([]string, 0, len(seen[field]))
		for v := range seen[field] {
			values = append(values, v)
		}
		slices.Sort(values)
		for _, v := range values {
			cols = append(cols, adoption.OneHotColumn(field, v))
		}
	}
	return cols
}

// BuildDataset codifica cada ejemplo con el mismo Encoder que usa el servicio,
// así entrenamiento e inferencia comparten exactamente la misma expansión.
func BuildDataset(examples []Example) (*Dataset, error) {
	if len(examples) == 0 {
		return nil, ErrEmptyDataset
	}

	schema, err := adoption.NewSchema(DeriveColumns(examples))
	if err != nil {
		return nil, err
	}
	enc := adoption.NewEncoder(schema)

	ds := &Dataset{
		Schema: schema,
		X:      make([][]float64, 0, len(examples)),
		Y:      make([]int, 0, len(examples)),
	}
	for _, ex := range examples {
		vec, err := enc.Encode(ex.Input)
		if err != nil {
			return nil, err
		}
		ds.X = append(ds.X, vec)
		ds.Y = append(ds.Y, ex.Label)
	}
	return ds, nil
}

// Subset devuelve filas por índice (comparte los slices de features).
func (d *Dataset) Subset(idx []int) ([][]float64, []int) {
	x := make([][]float64, len(idx))
	y := make([]int, len(idx))
	for i, j := range idx {
		x[i] = d.X[j]
		y[i] = d.Y[j]
	}
	return x, y
}

// Package forest implementa un random forest binario (árboles CART con Gini y bootstrap).
package forest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

var ErrEmptyTrainingSet = errors.New("forest: empty training set")

// Params de entrenamiento. MaxDepth = 0 significa sin límite.
type Params struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	// MaxFeatures = 0 usa sqrt(n_features).
	MaxFeatures int
	Seed        uint64
	// Workers = 0 usa GOMAXPROCS. No afecta el resultado.
	Workers int
}

func DefaultParams() Params {
	return Params{
		NumTrees:        100,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Seed:            42,
	}
}

// Forest es de solo lectura tras Fit/Load; PredictProba es seguro en paralelo.
type Forest struct {
	features int
	columns  []string
	trees    []Tree
}

// Fit entrena el bosque. Cada árbol usa su propio rng derivado de (Seed, índice),
// así el resultado no depende del orden de ejecución.
func Fit(ctx context.Context, x [][]float64, y []int, p Params) (*Forest, error) {
	if len(x) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("forest: %d rows but %d labels", len(x), len(y))
	}
	nFeatures := len(x[0])
	if nFeatures == 0 {
		return nil, errors.New("forest: rows have no features")
	}
	for i, row := range x {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("forest: row %d has %d features, want %d", i, len(row), nFeatures)
		}
		if y[i] != 0 && y[i] != 1 {
			return nil, fmt.Errorf("forest: label %d at row %d is not binary", y[i], i)
		}
	}

	p = withDefaults(p)
	maxFeatures := p.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = max(1, int(math.Sqrt(float64(nFeatures))))
	}
	maxFeatures = min(maxFeatures, nFeatures)

	trees := make([]Tree, p.NumTrees)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)
	for t := range trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(p.Seed, uint64(t)))
			idx := make([]int, len(x))
			for i := range idx {
				idx[i] = rng.IntN(len(x))
			}
			trees[t] = fitTree(x, y, idx, p, maxFeatures, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Forest{features: nFeatures, trees: trees}, nil
}

func withDefaults(p Params) Params {
	d := DefaultParams()
	if p.NumTrees <= 0 {
		p.NumTrees = d.NumTrees
	}
	if p.MinSamplesSplit < 2 {
		p.MinSamplesSplit = d.MinSamplesSplit
	}
	if p.MinSamplesLeaf < 1 {
		p.MinSamplesLeaf = d.MinSamplesLeaf
	}
	if p.Workers <= 0 {
		p.Workers = runtime.GOMAXPROCS(0)
	}
	return p
}

func (f *Forest) NumFeatures() int { return f.features }

func (f *Forest) NumTrees() int { return len(f.trees) }

// PredictProba promedia la probabilidad de la clase positiva de cada árbol.
func (f *Forest) PredictProba(x []float64) float64 {
	if len(x) != f.features {
		panic(fmt.Sprintf("forest: vector has %d features, model expects %d", len(x), f.features))
	}
	sum := 0.0
	for i := range f.trees {
		sum += f.trees[i].predict(x)
	}
	return sum / float64(len(f.trees))
}

// Predict devuelve la clase con mayor probabilidad (empate => 0).
func (f *Forest) Predict(x []float64) int {
	if f.PredictProba(x) > 0.5 {
		return 1
	}
	return 0
}

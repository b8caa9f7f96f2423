package training

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cat-adoption/internal/domain/adoption"
	"cat-adoption/internal/ml/forest"
	"cat-adoption/internal/platform/httpclient"

	"github.com/google/uuid"
)

var ErrEmptyDataset = errors.New("training: no usable rows after filtering")

type Options struct {
	TestFraction float64
	SplitSeed    uint64
	Forest       forest.Params
}

func DefaultOptions() Options {
	return Options{
		TestFraction: 0.2,
		SplitSeed:    42,
		Forest:       forest.DefaultParams(),
	}
}

type Result struct {
	Schema    *adoption.Schema
	Forest    *forest.Forest
	Report    Report
	TrainRows int
	TestRows  int
}

// Train codifica, separa 80/20, entrena y evalúa sobre el hold-out.
func Train(ctx context.Context, examples []Example, opts Options) (*Result, error) {
	ds, err := BuildDataset(examples)
	if err != nil {
		return nil, err
	}

	trainIdx, testIdx := TrainTestSplit(len(ds.Y), opts.TestFraction, opts.SplitSeed)
	xTrain, yTrain := ds.Subset(trainIdx)
	xTest, yTest := ds.Subset(testIdx)

	f, err := forest.Fit(ctx, xTrain, yTrain, opts.Forest)
	if err != nil {
		return nil, fmt.Errorf("fit forest: %w", err)
	}
	if err := f.SetColumns(ds.Schema.Columns()); err != nil {
		return nil, err
	}

	pred := make([]int, len(xTest))
	for i, row := range xTest {
		pred[i] = f.Predict(row)
	}

	return &Result{
		Schema:    ds.Schema,
		Forest:    f,
		Report:    Evaluate(yTest, pred),
		TrainRows: len(trainIdx),
		TestRows:  len(testIdx),
	}, nil
}

// Save escribe el modelo y el schema que cargará la API. Ambos se escriben primero
// a temporales y se renombran solo si los dos salieron bien; si falla alguno,
// los artefactos anteriores quedan intactos.
func (r *Result) Save(modelPath, schemaPath string) error {
	modelTmp := tempPath(modelPath)
	defer func() { _ = os.Remove(modelTmp) }()
	if err := r.Forest.SaveFile(modelTmp); err != nil {
		return fmt.Errorf("save model: %w", err)
	}

	schemaTmp := tempPath(schemaPath)
	defer func() { _ = os.Remove(schemaTmp) }()
	if err := adoption.SaveSchema(schemaTmp, r.Schema.Columns()); err != nil {
		return fmt.Errorf("save schema: %w", err)
	}

	// schema primero: si el segundo rename falla, la API rechaza el par al arrancar
	if err := os.Rename(schemaTmp, schemaPath); err != nil {
		return fmt.Errorf("save schema: %w", err)
	}
	if err := os.Rename(modelTmp, modelPath); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}

// tempPath queda en el mismo directorio que path para que os.Rename no cruce filesystems.
func tempPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
}

// OpenSource abre el CSV desde un path local o desde una URL http(s).
func OpenSource(ctx context.Context, src string, client *httpclient.Client) (io.ReadCloser, error) {
	if httpclient.IsURL(src) {
		if client == nil {
			client = httpclient.New(0)
		}
		return client.Download(ctx, src)
	}
	return os.Open(src)
}

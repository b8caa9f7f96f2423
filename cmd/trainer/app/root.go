// Package app es el CLI de entrenamiento offline del modelo de adopción.
package app

import (
	"fmt"
	"time"

	"cat-adoption/internal/platform/httpclient"
	"cat-adoption/internal/platform/logger"
	"cat-adoption/internal/training"

	"github.com/spf13/cobra"
)

type trainFlags struct {
	data      string
	modelOut  string
	schemaOut string
	testSize  float64
	splitSeed uint64
	trees     int
	maxDepth  int
	minLeaf   int
	seed      uint64
	workers   int
	logLevel  string
	logFormat string
	dlTimeout time.Duration
}

// NewRootCmd arma el comando; cada llamada devuelve una instancia nueva (tests).
func NewRootCmd() *cobra.Command {
	opts := training.DefaultOptions()
	f := trainFlags{
		modelOut:  "artifacts/model.json",
		schemaOut: "artifacts/schema.json",
		testSize:  opts.TestFraction,
		splitSeed: opts.SplitSeed,
		trees:     opts.Forest.NumTrees,
		maxDepth:  opts.Forest.MaxDepth,
		minLeaf:   opts.Forest.MinSamplesLeaf,
		seed:      opts.Forest.Seed,
		workers:   opts.Forest.Workers,
		logLevel:  "info",
		logFormat: "text",
		dlTimeout: httpclient.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:          "trainer",
		Short:        "Train the cat adoption random forest",
		Long:         "Reads the shelter intake/outcome CSV (local path or URL), trains the classifier and writes the model and schema artifacts.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrain(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.data, "data", "", "intake/outcome CSV path or http(s) URL")
	fl.StringVar(&f.modelOut, "model-out", f.modelOut, "output path for the model artifact")
	fl.StringVar(&f.schemaOut, "schema-out", f.schemaOut, "output path for the feature schema")
	fl.Float64Var(&f.testSize, "test-size", f.testSize, "hold-out fraction in (0,1)")
	fl.Uint64Var(&f.splitSeed, "split-seed", f.splitSeed, "seed for the train/test split")
	fl.IntVar(&f.trees, "trees", f.trees, "number of trees")
	fl.IntVar(&f.maxDepth, "max-depth", f.maxDepth, "max tree depth (0 = unlimited)")
	fl.IntVar(&f.minLeaf, "min-samples-leaf", f.minLeaf, "min samples per leaf")
	fl.Uint64Var(&f.seed, "seed", f.seed, "forest seed")
	fl.IntVar(&f.workers, "workers", f.workers, "parallel tree builders (0 = GOMAXPROCS)")
	fl.StringVar(&f.logLevel, "log-level", f.logLevel, "debug|info|warn|error")
	fl.StringVar(&f.logFormat, "log-format", f.logFormat, "text|json")
	fl.DurationVar(&f.dlTimeout, "download-timeout", f.dlTimeout, "timeout when --data is a URL")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runTrain(cmd *cobra.Command, f trainFlags) error {
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(f.logLevel),
		Format: logger.ParseFormat(f.logFormat),
		App:    "cat-adoption-trainer",
	})
	defer func() { _ = log.Sync() }()

	if f.testSize <= 0 || f.testSize >= 1 {
		return fmt.Errorf("--test-size must be in (0,1), got %v", f.testSize)
	}

	ctx := cmd.Context()
	src, err := training.OpenSource(ctx, f.data, httpclient.New(f.dlTimeout))
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer src.Close()

	start := time.Now()
	examples, stats, err := training.ReadExamples(src)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	log.Info("dataset loaded", map[string]any{
		"rows":      stats.Rows,
		"not_cat":   stats.NotCat,
		"dropped":   stats.Dropped,
		"kept":      stats.Kept,
		"positives": stats.Positives,
	})

	opts := training.DefaultOptions()
	opts.TestFraction = f.testSize
	opts.SplitSeed = f.splitSeed
	opts.Forest.NumTrees = f.trees
	opts.Forest.MaxDepth = f.maxDepth
	opts.Forest.MinSamplesLeaf = f.minLeaf
	opts.Forest.Seed = f.seed
	opts.Forest.Workers = f.workers

	res, err := training.Train(ctx, examples, opts)
	if err != nil {
		return err
	}
	log.Info("forest trained", map[string]any{
		"trees":       res.Forest.NumTrees(),
		"features":    res.Schema.Len(),
		"train_rows":  res.TrainRows,
		"test_rows":   res.TestRows,
		"accuracy":    res.Report.Accuracy,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if err := res.Report.Render(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if err := res.Save(f.modelOut, f.schemaOut); err != nil {
		return err
	}
	log.Info("artifacts written", map[string]any{"model": f.modelOut, "schema": f.schemaOut})
	return nil
}

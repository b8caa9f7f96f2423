// @title        Cat Adoption API
// @version      1.0
// @description  Shelter cats with predicted adoption chance.
// @BasePath     /
package main

//go:generate swag init -d ../.. -g cmd/api/main.go -o ../../docs

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cat-adoption/internal/adapters/files/local"
	mem "cat-adoption/internal/adapters/storage/memory"
	pg "cat-adoption/internal/adapters/storage/postgres"
	"cat-adoption/internal/config"
	"cat-adoption/internal/domain/adoption"
	"cat-adoption/internal/domain/cats"
	"cat-adoption/internal/metrics"
	"cat-adoption/internal/platform/logger"
	"cat-adoption/internal/router"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config load failed", map[string]any{"error": err})
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	// Sin modelo no arrancamos: el alta de gatos lo necesita siempre.
	schema, err := adoption.LoadSchema(cfg.SchemaPath)
	if err != nil {
		log.Error("schema load failed", map[string]any{"error": err})
		return err
	}
	clf, err := adoption.LoadClassifier(cfg.ModelPath)
	if err != nil {
		log.Error("model load failed", map[string]any{"error": err})
		return err
	}
	scorer, err := adoption.NewScorer(schema, clf)
	if err != nil {
		log.Error("model incompatible with schema", map[string]any{"error": err})
		return err
	}
	log.Info("model loaded", map[string]any{"features": schema.Len(), "model": cfg.ModelPath})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo cats.Repository
	if cfg.DatabaseDSN != "" {
		db, err := pg.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Error("database open failed", map[string]any{"error": err})
			return err
		}
		defer db.Close()

		if err := pg.Migrate(db, log); err != nil {
			log.Error("migrations failed", map[string]any{"error": err})
			return err
		}
		repo = pg.NewCatsRepo(db)
	} else {
		log.Warn("DB_DSN not set, using in-memory store", nil)
		repo = mem.NewCatRepo()
	}

	imgs, err := local.NewStore(cfg.UploadDir)
	if err != nil {
		log.Error("upload dir failed", map[string]any{"error": err})
		return err
	}

	handler := router.NewRouter(router.Options{
		Cats:           cats.NewService(repo, imgs, scorer),
		Logger:         log,
		Metrics:        metrics.New(),
		CORSOrigin:     cfg.CORSOrigin,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", map[string]any{"error": err})
		return err
	}
	return nil
}

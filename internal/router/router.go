package router

import (
	"net/http"

	_ "cat-adoption/docs"
	"cat-adoption/internal/domain/cats"
	"cat-adoption/internal/metrics"
	"cat-adoption/internal/middleware"
	"cat-adoption/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Cats *cats.Service

	Logger  logger.Logger    // nil => nop
	Metrics *metrics.Metrics // nil => sin /metrics

	CORSOrigin     string
	MaxUploadBytes int64
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.CORS(opts.CORSOrigin))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Welcome to the Cat Adoption API!"))
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	deps := cats.HandlerDeps{
		Log:            log,
		MaxUploadBytes: opts.MaxUploadBytes,
	}
	if opts.Metrics != nil {
		deps.Observer = opts.Metrics
	}
	cats.RegisterRoutes(r, opts.Cats, deps)

	return r
}

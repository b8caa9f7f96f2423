// Package metrics expone contadores Prometheus del API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	catsAdded      prometheus.Counter
	catsDeleted    prometheus.Counter
	adoptionChance prometheus.Histogram
}

// New usa un registry propio (no el global) para que los tests puedan crear varios.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cat_adoption_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cat_adoption_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		catsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cat_adoption_cats_added_total",
			Help: "Cats created (each one scored once).",
		}),
		catsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cat_adoption_cats_deleted_total",
			Help: "Cats deleted.",
		}),
		adoptionChance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cat_adoption_predicted_chance_percent",
			Help:    "Distribution of predicted adoption chance at intake.",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
	}

	reg.MustRegister(
		m.requests, m.duration, m.catsAdded, m.catsDeleted, m.adoptionChance,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) CatAdded(chance float64) {
	m.catsAdded.Inc()
	m.adoptionChance.Observe(chance)
}

func (m *Metrics) CatDeleted() { m.catsDeleted.Inc() }

// Middleware registra requests por patrón de ruta chi (no por path crudo, para no explotar cardinalidad).
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

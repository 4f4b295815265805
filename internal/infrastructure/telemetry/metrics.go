package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "customers_http_requests_total",
		Help: "Total de peticiones HTTP por método, ruta y código",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "customers_http_request_duration_seconds",
		Help:    "Latencia de las peticiones HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Negocio
	CustomerMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "customers_mutations_total",
		Help: "Altas, actualizaciones y bajas de clientes por resultado",
	}, []string{"operation", "result"})

	// Infraestructura
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "customers_cache_lookups_total",
		Help: "Lecturas del caché del listado (hit, miss, error)",
	}, []string{"result"})
)

// Package metrics registra los colectores Prometheus del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "franquicias_http_requests_total",
			Help: "Total de peticiones HTTP por ruta, método y código",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "franquicias_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	WorkerQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "franquicias_worker_queue_depth",
			Help: "Unidades de trabajo encoladas esperando un worker",
		},
	)

	WorkerJobsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "franquicias_worker_jobs_active",
			Help: "Unidades de trabajo en ejecución",
		},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "franquicias_worker_job_duration_seconds",
			Help:    "Duración de cada unidad de trabajo en segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)

	ListFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "franquicias_list_fallback_total",
			Help: "Veces que el listado de franquicias degradó a la versión sin sucursales",
		},
	)
)

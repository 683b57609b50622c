package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "storefront"

// Backend métricas de las llamadas a la API REST remota.
type Backend struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRegistry crea un registro propio con los collectors de proceso y runtime.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewBackend registra los vectores en reg.
func NewBackend(reg prometheus.Registerer) *Backend {
	b := &Backend{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Llamadas a la API de la tienda por ruta, método y status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Latencia de las llamadas a la API de la tienda.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(b.requests, b.duration)
	return b
}

// Observe registra una llamada. status 0 = fallo de transporte.
func (b *Backend) Observe(route, method string, status int, d time.Duration) {
	if b == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	b.requests.WithLabelValues(route, method, label).Inc()
	b.duration.WithLabelValues(route, method).Observe(d.Seconds())
}

package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "pet_social"

// Metrics agrupa los collectors del servicio. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	reg prometheus.Gatherer

	assetOps     *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registra los collectors en reg. Si reg es nil usa un registry propio
// (con collectors de proceso y Go) que después sirve Handler().
func New(namespace string, reg *prometheus.Registry) (*Metrics, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	}

	m := &Metrics{reg: reg}

	var err error
	m.assetOps, err = registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asset_operations_total",
		Help:      "Object store operations on pet images by op, reason and outcome.",
	}, []string{"op", "reason", "outcome"})
	if err != nil {
		return nil, err
	}

	m.httpRequests, err = registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})
	if err != nil {
		return nil, err
	}

	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	if err := reg.Register(hv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("register http duration histogram: %w", err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, fmt.Errorf("register http duration histogram: %w", err)
		}
		hv = existing
	}
	m.httpDuration = hv

	return m, nil
}

func registerCounterVec(reg prometheus.Registerer, opts prometheus.CounterOpts, labels []string) (*prometheus.CounterVec, error) {
	cv := prometheus.NewCounterVec(opts, labels)
	if err := reg.Register(cv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("register %s: %w", opts.Name, err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("register %s: %w", opts.Name, err)
		}
		return existing, nil
	}
	return cv, nil
}

// ObserveUpload implementa pets.AssetObserver.
func (m *Metrics) ObserveUpload(err error) {
	if m == nil {
		return
	}
	m.assetOps.WithLabelValues("upload", "", outcome(err)).Inc()
}

// ObserveRemoval implementa pets.AssetObserver.
func (m *Metrics) ObserveRemoval(reason string, err error) {
	if m == nil {
		return
	}
	m.assetOps.WithLabelValues("remove", reason, outcome(err)).Inc()
}

// ObserveHTTP: route es el pattern de chi (no el path crudo) para acotar cardinalidad.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

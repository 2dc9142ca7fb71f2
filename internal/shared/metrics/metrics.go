// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "payroll"

type Registry struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	batchRecords *prometheus.CounterVec
	payments     *prometheus.CounterVec
	notifySends  *prometheus.CounterVec
}

func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Registry{
		reg: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		batchRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_records_total",
			Help:      "Per-employee outcomes of period processing (processed, errored, skipped).",
		}, []string{"outcome"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Payment finalization outcomes (success, failed).",
		}, []string{"outcome"}),
		notifySends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Payment notification dispatch outcomes (sent, failed).",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.httpRequests, m.httpLatency, m.batchRecords, m.payments, m.notifySends)
	return m
}

func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Registry) ObserveRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Registry) AddBatch(processed, errored, skipped int) {
	if m == nil {
		return
	}
	m.batchRecords.WithLabelValues("processed").Add(float64(processed))
	m.batchRecords.WithLabelValues("errored").Add(float64(errored))
	m.batchRecords.WithLabelValues("skipped").Add(float64(skipped))
}

func (m *Registry) IncPayment(success bool) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(outcome(success, "success", "failed")).Inc()
}

func (m *Registry) IncNotification(sent bool) {
	if m == nil {
		return
	}
	m.notifySends.WithLabelValues(outcome(sent, "sent", "failed")).Inc()
}

func outcome(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

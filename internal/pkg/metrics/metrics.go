// Package metrics prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yatube_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	ActiveRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "yatube_active_requests",
			Help: "Number of in-flight HTTP requests",
		},
	)

	PageCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_page_cache_lookups_total",
			Help: "Page cache lookups by view and result",
		},
		[]string{"view", "result"},
	)

	OutboxEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_outbox_events_total",
			Help: "Outbox events relayed, by type and result",
		},
		[]string{"event", "result"},
	)
)

// Registry /metrics 暴露的注册表
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		HttpRequestsTotal,
		HttpRequestDuration,
		ActiveRequests,
		PageCacheLookups,
		OutboxEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

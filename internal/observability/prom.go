package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "temple"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "http", "request_duration_seconds"),
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
	}, []string{"method", "route", "status"})
	StoreOpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "store", "op_duration_seconds"),
		Help:    "Duration of repository operations in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"table", "op"})
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "store", "errors_total"),
		Help: "Repository operations that failed, by error kind",
	}, []string{"table", "op", "kind"})
	PoolAcquireTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "store", "acquire_timeouts_total"),
		Help: "Connection acquisitions that exceeded the acquire timeout",
	})
	JSONTextMalformed = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "jsontext", "malformed_total"),
		Help: "Stored JSON text columns that failed to parse and were read as null",
	})
)

// Package metrics exposes the credential tracker's counters as
// Prometheus collectors, mirroring the same numbers credentials.Tracker
// tracks atomically so GetStats() and /metrics never disagree.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shashank-sharma/backend/internal/logger"
)

var (
	EventsBuffered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "credential_usage_events_buffered_total",
		Help: "Total number of credential usage events submitted to the tracker.",
	})
	EventsFlushed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "credential_usage_events_flushed_total",
		Help: "Total number of credential usage events successfully persisted.",
	})
	Errors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "credential_usage_errors_total",
		Help: "Total number of per-record store write failures.",
	})
	BufferOverflows = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "credential_usage_buffer_overflows_total",
		Help: "Total number of times the tracker's buffer was full and an event was dropped.",
	})
	BufferDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "credential_usage_buffer_depth",
		Help: "Current number of events waiting in the tracker's buffer.",
	})
)

func init() {
	prometheus.MustRegister(EventsBuffered, EventsFlushed, Errors, BufferOverflows, BufferDepth)
}

// RegisterPrometheusMetrics mounts /metrics on the app's own HTTP router.
func RegisterPrometheusMetrics(pb *pocketbase.PocketBase) {
	pb.OnServe().BindFunc(func(e *core.ServeEvent) error {
		e.Router.GET("/metrics", func(re *core.RequestEvent) error {
			promhttp.Handler().ServeHTTP(re.Response, re.Request)
			return nil
		})
		return e.Next()
	})
}

// StartMetricsServer optionally serves /metrics on its own port, separate
// from the application router, for deployments that scrape metrics out of
// band from application traffic.
func StartMetricsServer(pb *pocketbase.PocketBase, port string) {
	if port == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		logger.LogInfo("Starting metrics server on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.LogError("Metrics server error: %v", err)
		}
	}()

	pb.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
		return e.Next()
	})
}

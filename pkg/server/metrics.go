package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caskdb/caskdb/internal/logger"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caskdb",
		Subsystem: "server",
		Name:      "commands_total",
		Help:      "Commands processed, by command name.",
	}, []string{"command"})

	commandErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caskdb",
		Subsystem: "server",
		Name:      "command_errors_total",
		Help:      "Commands that returned an error, by command name.",
	}, []string{"command"})

	connectionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "caskdb",
		Subsystem: "server",
		Name:      "connections_open",
		Help:      "Currently open client connections.",
	})

	connectionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "caskdb",
		Subsystem: "server",
		Name:      "connections_rejected_total",
		Help:      "Connections refused because the connection limit was reached.",
	})
)

// startMetrics exposes the Prometheus registry over HTTP on port.
func startMetrics(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics endpoint failed", "error", err)
		}
	}()
	logger.Info("Metrics endpoint listening", "port", port)
	return srv
}

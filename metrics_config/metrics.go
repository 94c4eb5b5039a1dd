package metrics_config

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nzsquirrell/testcoin/log"
)

// enabled is checked by the constructor functions for all of the
// standard metrics. If it is false, the metric returned is nil.
//
// This global kill-switch helps quantify the observer effect and makes
// for less cluttered pprof profiles.
var enabled = true

func EnableMetrics() {
	enabled = true
}

func DisableMetrics() {
	enabled = false
}

func MetricsEnabled() bool {
	return enabled
}

// StartMetricsServer exposes the default registry on addr under /metrics.
func StartMetricsServer(addr string) {
	if !enabled {
		return
	}
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.WithField("err", err).Error("Metrics server stopped")
		}
	}()
}

func NewGaugeVec(name string, help string) *prometheus.GaugeVec {
	if !enabled {
		return nil
	}
	gaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}, []string{"label"})
	prometheus.MustRegister(gaugeVec)
	return gaugeVec
}

func NewGauge(name string, help string) *prometheus.Gauge {
	if !enabled {
		return nil
	}
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
	prometheus.MustRegister(gauge)
	return &gauge
}

func NewCounter(name string, help string) *prometheus.Counter {
	if !enabled {
		return nil
	}
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: help,
	})
	prometheus.MustRegister(counter)
	return &counter
}

func NewCounterVec(name string, help string) *prometheus.CounterVec {
	if !enabled {
		return nil
	}
	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, []string{"label"})
	prometheus.MustRegister(counterVec)
	return counterVec
}

func NewTimer(name string, help string) *prometheus.Timer {
	if !enabled {
		return nil
	}
	timeHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: name,
		Help: help,
	})
	timer := prometheus.NewTimer(timeHistogram)
	prometheus.MustRegister(timeHistogram)

	return timer
}

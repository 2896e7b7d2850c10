package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var CalculationDurationMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "indicore_calculation_duration_seconds",
		Help:    "time spent in one indicator calculation",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"indicator", "slot"})

var CacheHitMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "indicore_cache_hits_total",
		Help: "calculations served from the output cache",
	}, []string{"indicator", "slot"})

var CalculatedBarsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "indicore_calculated_bars_total",
		Help: "bars passed through a calculator",
	}, []string{"indicator"})

// LastSignalMetrics holds the value of each signal component on the newest bar.
var LastSignalMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "indicore_last_signal",
		Help: "signal component value on the last bar",
	}, []string{"indicator", "slot", "role"})

func ObserveCalculation(indicator, slot string, bars int, d time.Duration) {
	CalculationDurationMetrics.WithLabelValues(indicator, slot).Observe(d.Seconds())
	CalculatedBarsMetrics.WithLabelValues(indicator).Add(float64(bars))
}

func ObserveCacheHit(indicator, slot string) {
	CacheHitMetrics.WithLabelValues(indicator, slot).Inc()
}

func SetLastSignal(indicator, slot, role string, value float64) {
	LastSignalMetrics.WithLabelValues(indicator, slot, role).Set(value)
}

// WriteTextfile dumps the registered metrics in the text exposition format,
// e.g. for the node exporter textfile collector.
func WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, prometheus.DefaultGatherer)
}

func init() {
	prometheus.MustRegister(
		CalculationDurationMetrics,
		CacheHitMetrics,
		CalculatedBarsMetrics,
		LastSignalMetrics,
	)
}

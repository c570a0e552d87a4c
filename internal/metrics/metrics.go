// Package metrics records store operation counts and latencies with Prometheus
// and renders them in the text exposition format.
package metrics

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
)

// Result label values
const (
	ResultOK          = "ok"
	ResultNotFound    = "not_found"
	ResultConstraint  = "constraint"
	ResultUnavailable = "unavailable"
	ResultError       = "error"
)

// Recorder observes store operations. The store calls it once per public
// operation.
type Recorder interface {
	ObserveQuery(op string, d time.Duration, err error)
}

// Nop discards observations
type Nop struct{}

func (Nop) ObserveQuery(string, time.Duration, error) {}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "habitlog_store_operations_total",
			Help: "Store operations by operation name and result.",
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "habitlog_store_operation_duration_seconds",
			Help:    "Store operation latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}

	reg.MustRegister(c.operations, c.duration)
	return c
}

// ObserveQuery counts the operation under its result class and records its latency.
func (c *Collector) ObserveQuery(op string, d time.Duration, err error) {
	c.operations.WithLabelValues(op, Result(err)).Inc()
	c.duration.WithLabelValues(op).Observe(d.Seconds())
}

// Result maps an operation error onto its result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, apperrors.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, apperrors.ErrConstraintViolation):
		return ResultConstraint
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return ResultUnavailable
	default:
		return ResultError
	}
}

// Write gathers every metric family from g and writes it to w in text format.
func Write(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

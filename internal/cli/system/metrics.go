package system

import (
	"errors"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/metrics"
)

// MetricsCmd runs the dashboard queries and prints the store metrics they
// produced in Prometheus text format
type MetricsCmd struct{}

func (c *MetricsCmd) Run(ctx *cli.Context) error {
	if ctx.Registry == nil {
		return errors.New("metrics are not enabled")
	}
	if _, err := ctx.Tracker.Dashboard(); err != nil {
		return err
	}
	return metrics.Write(ctx.Registry, ctx.Stdout())
}

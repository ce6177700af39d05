// Package cli holds the state shared by the behavior subcommands.
package cli

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/go-leo/behavior/metrics"
)

// Version of the behavior binary.
const Version = "v0.1.0"

const namespace = "behavior"

var (
	// Verbosity is the logr verbosity. 0 logs errors only, 1 traces every step and dispatch.
	Verbosity int
	// ShowMetrics dumps the collected metrics after a command ran.
	ShowMetrics bool
)

// Logger returns a logger writing to w at the configured verbosity.
func Logger(w io.Writer) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: Verbosity})
}

// Metrics returns collectors registered with a fresh registry.
func Metrics() (*metrics.Metrics, *prometheus.Registry, error) {
	m := metrics.New(namespace)
	registry := prometheus.NewRegistry()
	if err := m.Register(registry); err != nil {
		return nil, nil, err
	}
	return m, registry, nil
}

// WriteMetrics writes everything g gathers to w in the text exposition format.
func WriteMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}

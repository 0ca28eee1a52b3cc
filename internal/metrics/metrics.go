// Package metrics defines the prometheus counters exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registrations counts successful person registrations.
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "labtrack_registrations_total",
		Help: "Successful person registrations.",
	})

	// Scans counts successful credential scans by resulting action.
	Scans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labtrack_scans_total",
		Help: "Successful credential scans by action.",
	}, []string{"action"})

	// Exports counts generated spreadsheet downloads by kind.
	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labtrack_exports_total",
		Help: "Generated spreadsheet exports by kind.",
	}, []string{"kind"})
)

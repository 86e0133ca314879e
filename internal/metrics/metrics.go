// Package metrics exposes the Prometheus instruments the handlers and
// background flows increment. The registry is the default one; /metrics is
// served by promhttp in the routes package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TimeIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fams_time_ins_total",
		Help: "Time-in events recorded, by status.",
	}, []string{"status"})

	TimeOuts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fams_time_outs_total",
		Help: "Time-out events recorded, by resulting status.",
	}, []string{"status"})

	AbsencesSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fams_absences_swept_total",
		Help: "Absent rows inserted by the sweep.",
	})

	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fams_schedule_resolutions_total",
		Help: "Current-schedule resolutions, by outcome.",
	}, []string{"outcome"})

	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fams_sync_runs_total",
		Help: "Sync flow runs, by flow and result.",
	}, []string{"flow", "result"})

	SyncRowErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fams_sync_row_errors_total",
		Help: "Per-row failures accumulated during sync flows, by flow.",
	}, []string{"flow"})
)

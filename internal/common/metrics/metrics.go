// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysisRunsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_runs_completed_total",
			Help: "Total number of analysis runs completed per channel",
		},
		[]string{"channel"},
	)

	AnalysisRunsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_runs_failed_total",
			Help: "Total number of analysis runs failed per channel",
		},
		[]string{"channel", "error_code"},
	)

	AnalysisRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "analysis_run_duration_seconds",
			Help: "Duration of analysis runs in seconds",
		},
		[]string{"channel"},
	)

	RecordsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_records_scored_total",
			Help: "Total number of keyword records scored per channel",
		},
		[]string{"channel"},
	)

	RecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_records_dropped_total",
			Help: "Total number of records dropped at ingestion, by reason",
		},
		[]string{"channel", "reason"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_notifications_sent_total",
			Help: "Total number of run digests delivered, by transport",
		},
		[]string{"transport"},
	)
)

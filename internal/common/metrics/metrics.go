// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeAdvanced = "advanced"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

var (
	StepSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_step_submissions_total",
			Help: "Total number of step submissions by outcome",
		},
		[]string{"step", "outcome"},
	)

	ValidationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_validation_errors_total",
			Help: "Total number of field validation errors reported on submit",
		},
		[]string{"step"},
	)

	StepResets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_step_resets_total",
			Help: "Total number of step resets",
		},
		[]string{"step"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

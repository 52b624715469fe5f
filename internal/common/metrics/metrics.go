// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Slot sources for GarmentSlotsResolved.
const (
	SourceExtracted = "extracted"
	SourceExplicit  = "explicit"
	SourceDefault   = "default"
)

var (
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

	GarmentSlotsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garment_slots_resolved_total",
			Help: "Parameter slots resolved per source (extracted, explicit, default)",
		},
		[]string{"slot", "source"},
	)

	GarmentOptimizerFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garment_optimizer_fallbacks_total",
			Help: "Fields the optimizer filled from defaults or derivation rules",
		},
		[]string{"field"},
	)

	GarmentExtractionCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garment_extraction_cache_total",
			Help: "Extraction cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)

// JobTimer tracks one job for the worker metrics.
type JobTimer struct {
	taskType string
	started  time.Time
	timer    *prometheus.Timer
}

// StartJob marks a job active and starts its duration timer.
func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{
		taskType: taskType,
		started:  time.Now(),
		timer:    prometheus.NewTimer(WorkerJobDuration.WithLabelValues(taskType)),
	}
}

// Complete records a successful job.
func (j *JobTimer) Complete() {
	j.finish()
	WorkerJobsCompleted.WithLabelValues(j.taskType).Inc()
}

// Fail records a failed job under errorCode.
func (j *JobTimer) Fail(errorCode string) {
	j.finish()
	WorkerJobsFailed.WithLabelValues(j.taskType, errorCode).Inc()
}

// Elapsed is the time since StartJob.
func (j *JobTimer) Elapsed() time.Duration {
	return time.Since(j.started)
}

func (j *JobTimer) finish() {
	j.timer.ObserveDuration()
	WorkerJobsActive.WithLabelValues(j.taskType).Dec()
}

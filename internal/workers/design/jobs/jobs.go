// Package jobs holds the job plumbing shared by the design workers:
// decoding and validating variables, completing jobs and reporting failures.
package jobs

import (
	"context"
	"encoding/json"

	"garment-workers/internal/common/errors"
	"garment-workers/internal/common/logger"
	"garment-workers/internal/common/metrics"
	"garment-workers/internal/common/observability"
	"garment-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

var obs *observability.Observability

// UseObservability routes job outcomes to o in addition to the Prometheus
// worker metrics. Call once at startup.
func UseObservability(o *observability.Observability) {
	obs = o
}

// Decode validates the job variables against schema and unmarshals them into dst.
func Decode(job entities.Job, schema validation.JSONSchema, dst interface{}) error {
	vars, err := job.GetVariablesAsMap()
	if err != nil {
		return errors.NewParseError(err)
	}
	if err := Validate(vars, schema); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(job.Variables), dst); err != nil {
		return errors.NewParseError(err)
	}
	return nil
}

// Validate checks already decoded variables against schema.
func Validate(vars map[string]interface{}, schema validation.JSONSchema) error {
	if result := validation.ValidateInput(vars, schema); !result.Valid {
		return errors.NewInvalidDesignInputError(result.Summary())
	}
	return nil
}

// Responder sends the job outcome back to the broker and records metrics.
type Responder struct {
	taskType string
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewResponder(taskType string, log logger.Logger) *Responder {
	return &Responder{
		taskType: taskType,
		errors:   errors.NewErrorHandler(log),
		logger:   log,
	}
}

// Start logs the job and starts its metrics timer.
func (r *Responder) Start(job entities.Job) *metrics.JobTimer {
	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	return metrics.StartJob(r.taskType)
}

func (r *Responder) Complete(ctx context.Context, client worker.JobClient, job entities.Job, timer *metrics.JobTimer, output interface{}) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		r.Fail(ctx, client, job, timer, errors.NewParseError(err))
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		timer.Fail(string(errors.ErrCodeBrokerUnavailable))
		r.record(ctx, timer, "failed")
		return
	}

	timer.Complete()
	r.record(ctx, timer, "completed")
	r.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey": job.Key,
	})
}

func (r *Responder) Fail(ctx context.Context, client worker.JobClient, job entities.Job, timer *metrics.JobTimer, err error) {
	bpmnErr := r.errors.HandleJobError(ctx, client, job, err)
	timer.Fail(bpmnErr.Code)
	r.record(ctx, timer, "failed")
}

func (r *Responder) record(ctx context.Context, timer *metrics.JobTimer, status string) {
	obs.RecordJobProcessed(ctx, r.taskType, status)
	obs.RecordJobDuration(ctx, r.taskType, timer.Elapsed(), status)
}

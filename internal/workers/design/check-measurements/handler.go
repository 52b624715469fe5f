// internal/workers/design/check-measurements/handler.go
package checkmeasurements

import (
	"context"

	"garment-workers/internal/common/logger"
	"garment-workers/internal/common/validation"
	"garment-workers/internal/garment"
	"garment-workers/internal/workers/design/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-measurements"
)

var inputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"parameters": {
			Type: "object",
			Properties: map[string]validation.Property{
				"bust":     {Type: "number"},
				"waist":    {Type: "number"},
				"hip":      {Type: "number"},
				"shoulder": {Type: "number"},
			},
			Required: []string{"bust", "waist", "hip", "shoulder"},
		},
	},
	Required:             []string{"parameters"},
	AdditionalProperties: true,
}

type Handler struct {
	config    *Config
	responder *jobs.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:    config,
		responder: jobs.NewResponder(TaskType, log),
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := h.responder.Start(job)

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := jobs.Decode(job, inputSchema, &input); err != nil {
		h.responder.Fail(ctx, client, job, timer, err)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.responder.Fail(ctx, client, job, timer, err)
		return
	}

	h.responder.Complete(ctx, client, job, timer, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	warnings := garment.CheckMeasurements(input.Parameters)
	if warnings == nil {
		warnings = []garment.Warning{}
	}

	for _, w := range warnings {
		h.logger.Info("measurement warning", map[string]interface{}{
			"code":  w.Code,
			"field": w.Field,
		})
	}

	return &Output{
		Warnings:    warnings,
		HasWarnings: len(warnings) > 0,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// internal/workers/design/optimize-garment-parameters/handler.go
package optimizegarmentparameters

import (
	"context"
	"strings"

	"garment-workers/internal/common/logger"
	"garment-workers/internal/common/metrics"
	"garment-workers/internal/common/validation"
	"garment-workers/internal/garment"
	"garment-workers/internal/workers/design/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "optimize-garment-parameters"
)

// params stays loosely typed: Optimize coerces whatever the form layer sends.
var inputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"params": {Type: []string{"object", "null"}},
		"mode":   {Type: []string{"string", "null"}},
	},
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	label := input.Mode
	if strings.TrimSpace(label) == "" {
		label = h.config.DefaultMode
	}
	mode := garment.ParseMode(label)

	defaulted := garment.Defaulted(input.Params)
	for _, f := range defaulted {
		metrics.GarmentOptimizerFallbacks.WithLabelValues(f).Inc()
	}

	params := garment.Optimize(input.Params, mode)

	h.logger.Debug("parameters optimized", map[string]interface{}{
		"mode":      mode.String(),
		"defaulted": len(defaulted),
	})

	return &Output{
		Parameters:      params,
		Mode:            mode.String(),
		DefaultedFields: defaulted,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

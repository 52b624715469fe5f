// internal/workers/design/extract-garment-attributes/handler.go
package extractgarmentattributes

import (
	"context"

	"garment-workers/internal/common/logger"
	"garment-workers/internal/common/metrics"
	"garment-workers/internal/common/validation"
	"garment-workers/internal/garment"
	"garment-workers/internal/workers/design/imageinput"
	"garment-workers/internal/workers/design/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "extract-garment-attributes"
)

var inputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"text":        {Type: "string", MaxLength: validation.Int(4000)},
		"imageBase64": {Type: []string{"string", "null"}},
		"imageUrl":    {Type: []string{"string", "null"}},
	},
	Required:             []string{"text"},
	AdditionalProperties: true,
}

type Handler struct {
	config    *Config
	extractor *garment.Extractor
	images    *imageinput.Loader
	responder *jobs.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, images *imageinput.Loader, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:    config,
		extractor: garment.NewExtractor(config.Extractor),
		images:    images,
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
	raw, err := h.images.Load(ctx, input.ImageBase64, input.ImageURL)
	if err != nil {
		return nil, err
	}

	attrs, err := h.extractor.ExtractBytes(input.Text, raw)
	if err != nil {
		h.logger.Warn("reference image ignored", map[string]interface{}{
			"imageBytes": len(raw),
			"error":      err,
		})
	}
	known := attrs.Known()
	for _, slot := range known {
		metrics.GarmentSlotsResolved.WithLabelValues(slot, metrics.SourceExtracted).Inc()
	}

	h.logger.Debug("attributes extracted", map[string]interface{}{
		"knownFields": known,
		"hasImage":    len(raw) > 0,
	})

	return &Output{
		Attributes:     attrs,
		KnownFields:    known,
		GarmentOptions: append([]string(nil), garment.GarmentOptions...),
	}, nil
}

// Execute is exposed for tests and the e2e pipeline.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

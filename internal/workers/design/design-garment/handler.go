// internal/workers/design/design-garment/handler.go
package designgarment

import (
	"context"
	"strings"
	"time"

	"garment-workers/internal/common/logger"
	"garment-workers/internal/common/metrics"
	"garment-workers/internal/common/observability"
	"garment-workers/internal/common/validation"
	"garment-workers/internal/garment"
	"garment-workers/internal/workers/design/imageinput"
	"garment-workers/internal/workers/design/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "design-garment"
)

var inputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"text":           {Type: []string{"string", "null"}, MaxLength: validation.Int(4000)},
		"imageBase64":    {Type: []string{"string", "null"}},
		"imageUrl":       {Type: []string{"string", "null"}},
		"explicitFields": {Type: []string{"object", "null"}},
		"lockedFields":   {Type: []string{"array", "null"}, Items: &validation.Property{Type: "string"}},
		"mode":           {Type: []string{"string", "null"}},
	},
	AdditionalProperties: true,
}

// Handler runs the whole inference pipeline in one job: extract, merge with
// the form fields, optimize, then sanity check.
type Handler struct {
	config    *Config
	extractor *garment.Extractor
	images    *imageinput.Loader
	cache     *extractionCache
	obs       *observability.Observability
	responder *jobs.Responder
	logger    logger.Logger
}

// NewHandler builds the handler. rdb may be nil to run without the
// extraction cache; obs may be nil.
func NewHandler(config *Config, images *imageinput.Loader, rdb redis.Cmdable, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:    config,
		extractor: garment.NewExtractor(config.Extractor),
		images:    images,
		cache:     &extractionCache{rdb: rdb, ttl: config.CacheTTL, logger: log},
		obs:       obs,
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
	started := time.Now()
	raw, err := h.images.Load(ctx, input.ImageBase64, input.ImageURL)
	if err != nil {
		return nil, err
	}

	key := CacheKey(input.Text, raw)
	attrs, hit := h.cache.get(ctx, key)
	if !hit {
		var imgErr error
		attrs, imgErr = h.extractor.ExtractBytes(input.Text, raw)
		if imgErr != nil {
			h.logger.Warn("reference image ignored", map[string]interface{}{
				"imageBytes": len(raw),
				"error":      imgErr,
			})
		}
		h.cache.put(ctx, key, attrs)
	}
	h.obs.RecordStage(ctx, observability.StageExtract, started)

	started = time.Now()
	var locks garment.LockSet
	if input.LockedFields != nil {
		locks = garment.NewLockSet(input.LockedFields...)
	}
	merged := garment.Merge(attrs, input.ExplicitFields, locks)
	sources := garment.Sources(attrs, merged)
	for slot, source := range sources {
		metrics.GarmentSlotsResolved.WithLabelValues(slot, source).Inc()
	}
	h.obs.RecordStage(ctx, observability.StageMerge, started)

	started = time.Now()
	label := input.Mode
	if strings.TrimSpace(label) == "" {
		label = h.config.DefaultMode
	}
	mode := garment.ParseMode(label)
	for _, f := range garment.Defaulted(merged) {
		metrics.GarmentOptimizerFallbacks.WithLabelValues(f).Inc()
	}
	params := garment.Optimize(merged, mode)
	h.obs.RecordStage(ctx, observability.StageOptimize, started)

	started = time.Now()
	warnings := garment.CheckMeasurements(params)
	if warnings == nil {
		warnings = []garment.Warning{}
	}
	h.obs.RecordStage(ctx, observability.StageCheck, started)

	h.logger.Info("garment designed", map[string]interface{}{
		"mode":        mode.String(),
		"garmentType": params.GarmentType,
		"cacheHit":    hit,
		"warnings":    len(warnings),
	})

	return &Output{
		Attributes:  attrs,
		Parameters:  params,
		Warnings:    warnings,
		HasWarnings: len(warnings) > 0,
		Sources:     sources,
		Mode:        mode.String(),
		CacheHit:    hit,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

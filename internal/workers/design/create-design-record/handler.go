// internal/workers/design/create-design-record/handler.go
package createdesignrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"garment-workers/internal/common/errors"
	"garment-workers/internal/common/logger"
	"garment-workers/internal/common/observability"
	"garment-workers/internal/common/validation"
	"garment-workers/internal/garment"
	"garment-workers/internal/workers/design/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-design-record"

	statusCreated = "created"

	eventDesignCreated = "design_created"
)

// Indexer makes stored designs searchable. *database.ElasticsearchClient
// satisfies it.
type Indexer interface {
	IndexDesign(ctx context.Context, id string, doc interface{}) error
}

// Publisher announces design lifecycle events. *aws.SNSClient satisfies it.
type Publisher interface {
	PublishEvent(ctx context.Context, eventType string, payload interface{}) error
}

var inputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"parameters": {Type: "object"},
		"sourceText": {Type: []string{"string", "null"}},
		"mode":       {Type: []string{"string", "null"}},
		"designerId": {Type: []string{"string", "null"}, MaxLength: validation.Int(128)},
	},
	Required:             []string{"parameters"},
	AdditionalProperties: true,
}

type Handler struct {
	config    *Config
	db        *sql.DB
	contract  *validation.Contract
	indexer   Indexer
	publisher Publisher
	obs       *observability.Observability
	responder *jobs.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, db *sql.DB, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	contract, err := validation.NewContract(config.ContractSchemaPath)
	if err != nil {
		return nil, err
	}
	log = log.WithFields(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:    config,
		db:        db,
		contract:  contract,
		obs:       obs,
		responder: jobs.NewResponder(TaskType, log),
		logger:    log,
	}, nil
}

// WithIndexer adds a search index write after each insert.
func (h *Handler) WithIndexer(i Indexer) *Handler {
	h.indexer = i
	return h
}

// WithPublisher adds a design_created event after each insert.
func (h *Handler) WithPublisher(p Publisher) *Handler {
	h.publisher = p
	return h
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
	defer h.obs.RecordStage(ctx, observability.StagePersist, started)

	if result := h.contract.Validate(input.Parameters); !result.Valid {
		h.logger.Warn("parameters rejected by renderer contract", map[string]interface{}{
			"errors": result.GetErrorMessages(),
		})
		return nil, errors.NewContractValidationFailedError(result.Summary())
	}

	raw, err := json.Marshal(input.Parameters)
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	var params garment.DenseParameters
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, errors.NewParseError(err)
	}
	// Store the typed form so unknown keys never reach the table.
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, errors.NewParseError(err)
	}

	designID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)
	mode := garment.ParseMode(input.Mode).String()

	var designerID sql.NullString
	if input.DesignerID != "" {
		designerID = sql.NullString{String: input.DesignerID, Valid: true}
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO garment_designs (
			id, designer_id, mode, garment_type, source_text, parameters, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		designID,
		designerID,
		mode,
		params.GarmentType,
		input.SourceText,
		paramsJSON,
		statusCreated,
		createdAt,
	)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError(err)
	}

	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"designerId":  input.DesignerID,
		"mode":        mode,
		"garmentType": params.GarmentType,
		"fit":         params.Fit,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		eventDesignCreated,
		"garment_design",
		designID,
		auditDetailsJSON,
		createdAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":    err,
			"designId": designID,
		})
	}

	h.announce(ctx, designDocument{
		DesignID:      designID,
		DesignerID:    input.DesignerID,
		Mode:          mode,
		GarmentType:   params.GarmentType,
		Fit:           params.Fit,
		Color:         params.Color,
		Fabric:        params.Fabric,
		StyleKeywords: params.StyleKeywords,
		SourceText:    input.SourceText,
		CreatedAt:     createdAt,
		Parameters:    params,
	})

	h.logger.Info("design record created", map[string]interface{}{
		"designId":    designID,
		"designerId":  input.DesignerID,
		"garmentType": params.GarmentType,
		"mode":        mode,
	})

	return &Output{
		DesignID:  designID,
		Status:    statusCreated,
		CreatedAt: createdAt,
	}, nil
}

// announce runs the optional index and event sinks. The row is already
// committed, so failures are logged and the job still completes.
func (h *Handler) announce(ctx context.Context, doc designDocument) {
	if h.indexer != nil {
		if err := h.indexer.IndexDesign(ctx, doc.DesignID, doc); err != nil {
			h.logger.Warn("design index write failed", map[string]interface{}{
				"designId": doc.DesignID,
				"error":    err,
			})
		}
	}
	if h.publisher != nil {
		if err := h.publisher.PublishEvent(ctx, eventDesignCreated, doc); err != nil {
			h.logger.Warn("design event publish failed", map[string]interface{}{
				"designId": doc.DesignID,
				"error":    err,
			})
		}
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

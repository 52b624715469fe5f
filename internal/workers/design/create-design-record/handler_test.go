// internal/workers/design/create-design-record/handler_test.go
package createdesignrecord

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"garment-workers/internal/common/errors"
	"garment-workers/internal/common/logger"
	"garment-workers/internal/garment"
	"garment-workers/internal/workers/design/jobs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func paramsMap(t *testing.T, p garment.DenseParameters) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func createTestInput(t *testing.T) *Input {
	attrs := garment.NewExtractor(garment.DefaultConfig()).Extract("酒红色真丝连衣裙，修身，胸围86", nil)
	return &Input{
		Parameters: paramsMap(t, garment.Optimize(garment.Merge(attrs, nil, nil), garment.Assisted)),
		SourceText: "酒红色真丝连衣裙，修身，胸围86",
		Mode:       "智能模式（新手）",
		DesignerID: "designer-007",
	}
}

func newTestHandler(t *testing.T, cfg *Config) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	if cfg == nil {
		cfg = LoadConfig()
	}
	h, err := NewHandler(cfg, db, nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	return h, mock
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	h, mock := newTestHandler(t, nil)

	mock.ExpectExec(`INSERT INTO garment_designs`).
		WithArgs(
			sqlmock.AnyArg(), // design ID
			"designer-007",
			"assisted",
			garment.GarmentDress,
			"酒红色真丝连衣裙，修身，胸围86",
			sqlmock.AnyArg(), // parameters JSON
			"created",
			sqlmock.AnyArg(), // created_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("design_created", "garment_design", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), createTestInput(t))
	require.NoError(t, err)

	_, err = uuid.Parse(output.DesignID)
	assert.NoError(t, err)
	assert.Equal(t, "created", output.Status)
	_, err = time.Parse(time.RFC3339, output.CreatedAt)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_AnonymousDesigner(t *testing.T) {
	h, mock := newTestHandler(t, nil)
	input := createTestInput(t)
	input.DesignerID = ""
	input.Mode = ""

	mock.ExpectExec(`INSERT INTO garment_designs`).
		WithArgs(sqlmock.AnyArg(), nil, "professional", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "created", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_AuditFailureIsNotFatal(t *testing.T) {
	h, mock := newTestHandler(t, nil)

	mock.ExpectExec(`INSERT INTO garment_designs`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(stderrors.New("relation \"audit_log\" does not exist"))

	output, err := h.Execute(context.Background(), createTestInput(t))
	require.NoError(t, err)
	assert.NotEmpty(t, output.DesignID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_InsertFailure(t *testing.T) {
	h, mock := newTestHandler(t, nil)

	mock.ExpectExec(`INSERT INTO garment_designs`).
		WillReturnError(stderrors.New("connection reset by peer"))

	_, err := h.Execute(context.Background(), createTestInput(t))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDatabaseInsertFailed))
	assert.True(t, errors.AsStandardError(err).Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Index & Event Tests
// ==========================

type recordingSink struct {
	ids    []string
	events []string
	docs   []designDocument
	err    error
}

func (r *recordingSink) IndexDesign(ctx context.Context, id string, doc interface{}) error {
	r.ids = append(r.ids, id)
	r.docs = append(r.docs, doc.(designDocument))
	return r.err
}

func (r *recordingSink) PublishEvent(ctx context.Context, eventType string, payload interface{}) error {
	r.events = append(r.events, eventType)
	r.docs = append(r.docs, payload.(designDocument))
	return r.err
}

func TestHandler_Execute_IndexesAndPublishes(t *testing.T) {
	h, mock := newTestHandler(t, nil)
	index, topic := &recordingSink{}, &recordingSink{}
	h.WithIndexer(index).WithPublisher(topic)

	mock.ExpectExec(`INSERT INTO garment_designs`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), createTestInput(t))
	require.NoError(t, err)

	assert.Equal(t, []string{output.DesignID}, index.ids)
	assert.Equal(t, []string{"design_created"}, topic.events)
	require.Len(t, index.docs, 1)
	doc := index.docs[0]
	assert.Equal(t, "designer-007", doc.DesignerID)
	assert.Equal(t, "assisted", doc.Mode)
	assert.Equal(t, garment.GarmentDress, doc.GarmentType)
	assert.Equal(t, "#8B0000", doc.Color)
	assert.Equal(t, output.CreatedAt, doc.CreatedAt)
	assert.Equal(t, index.docs, topic.docs)
}

func TestHandler_Execute_SinkFailuresAreNotFatal(t *testing.T) {
	h, mock := newTestHandler(t, nil)
	failing := &recordingSink{err: stderrors.New("cluster unavailable")}
	h.WithIndexer(failing).WithPublisher(failing)

	mock.ExpectExec(`INSERT INTO garment_designs`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), createTestInput(t))
	require.NoError(t, err)
	assert.Equal(t, "created", output.Status)
	assert.Len(t, failing.ids, 1)
	assert.Len(t, failing.events, 1)
}

func TestHandler_Execute_NoSinksOnInsertFailure(t *testing.T) {
	h, mock := newTestHandler(t, nil)
	sink := &recordingSink{}
	h.WithIndexer(sink).WithPublisher(sink)

	mock.ExpectExec(`INSERT INTO garment_designs`).WillReturnError(stderrors.New("deadlock detected"))

	_, err := h.Execute(context.Background(), createTestInput(t))
	require.Error(t, err)
	assert.Empty(t, sink.ids)
	assert.Empty(t, sink.events)
}

// ==========================
// Contract Tests
// ==========================

func TestHandler_Execute_ContractViolation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]interface{})
		field  string
	}{
		{"lowercase color", func(m map[string]interface{}) { m["color"] = "#8b0000" }, "color"},
		{"unknown fit", func(m map[string]interface{}) { m["fit"] = "Baggy" }, "fit"},
		{"missing shoulder", func(m map[string]interface{}) { delete(m, "shoulder") }, "shoulder"},
		{"not optimized", func(m map[string]interface{}) { m["status"] = "draft" }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mock := newTestHandler(t, nil)
			input := createTestInput(t)
			tt.mutate(input.Parameters)

			_, err := h.Execute(context.Background(), input)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeContractValidationFailed))
			assert.Contains(t, errors.AsStandardError(err).Details, tt.field)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNewHandler_ContractFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.json")
	schema := `{"type":"object","required":["garment_type"],"properties":{"garment_type":{"const":"旗袍"}}}`
	require.NoError(t, os.WriteFile(path, []byte(schema), 0o600))

	cfg := LoadConfig()
	cfg.ContractSchemaPath = path
	h, _ := newTestHandler(t, cfg)

	_, err := h.Execute(context.Background(), createTestInput(t))
	assert.True(t, errors.HasCode(err, errors.ErrCodeContractValidationFailed))

	cfg.ContractSchemaPath = filepath.Join(t.TempDir(), "missing.json")
	_, err = NewHandler(cfg, nil, nil, logger.NewTestLogger(t))
	assert.Error(t, err)
}

func TestInputSchema(t *testing.T) {
	assert.NoError(t, jobs.Validate(map[string]interface{}{"parameters": map[string]interface{}{}}, inputSchema))

	err := jobs.Validate(map[string]interface{}{"sourceText": "x"}, inputSchema)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidDesignInput))
}

// internal/workers/design/optimize-garment-parameters/handler_test.go
package optimizegarmentparameters

import (
	"context"
	"testing"

	"garment-workers/internal/common/errors"
	"garment-workers/internal/common/logger"
	"garment-workers/internal/garment"
	"garment-workers/internal/workers/design/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, defaultMode string) *Handler {
	cfg := LoadConfig()
	if defaultMode != "" {
		cfg.DefaultMode = defaultMode
	}
	return NewHandler(cfg, logger.NewTestLogger(t))
}

func TestExecute_ProfessionalExplicitMeasurements(t *testing.T) {
	out, err := newTestHandler(t, "").Execute(context.Background(), &Input{
		Params: garment.Record{"height": 170.0, "bust": 90.0},
		Mode:   "职业模式（设计师/打版师）",
	})
	require.NoError(t, err)

	p := out.Parameters
	assert.Equal(t, "professional", out.Mode)
	assert.Equal(t, 170.0, p.Height)
	assert.Equal(t, 34.0, p.Shoulder)
	assert.Equal(t, 40.8, p.TorsoLength)
	assert.Equal(t, garment.DefaultEase, p.Ease)
	assert.Equal(t, garment.StatusOptimized, p.Status)

	assert.NotContains(t, out.DefaultedFields, garment.FieldHeight)
	assert.NotContains(t, out.DefaultedFields, garment.FieldBust)
	assert.Contains(t, out.DefaultedFields, garment.FieldShoulder)
	assert.Contains(t, out.DefaultedFields, garment.FieldColor)
}

func TestExecute_EmptyModeUsesConfiguredDefault(t *testing.T) {
	in := &Input{Params: garment.Record{"fit": "修身"}}

	out, err := newTestHandler(t, "智能").Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "assisted", out.Mode)
	assert.Equal(t, 2.0, out.Parameters.Ease)

	out, err = newTestHandler(t, "").Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "professional", out.Mode)
	assert.Equal(t, garment.DefaultEase, out.Parameters.Ease)
}

func TestExecute_NilParams(t *testing.T) {
	out, err := newTestHandler(t, "").Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, garment.Optimize(nil, garment.Professional), out.Parameters)
	assert.Len(t, out.DefaultedFields, len(garment.Defaulted(nil)))
}

func TestExecute_Idempotent(t *testing.T) {
	h := newTestHandler(t, "")
	first, err := h.Execute(context.Background(), &Input{
		Params: garment.Record{"color": "#8b0000", "material": "牛仔", "bust": "92"},
		Mode:   "assisted",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.8, first.Parameters.SeamAllowance)

	second, err := h.Execute(context.Background(), &Input{
		Params: first.Parameters.Record(),
		Mode:   "assisted",
	})
	require.NoError(t, err)
	assert.Equal(t, first.Parameters, second.Parameters)
	assert.Empty(t, second.DefaultedFields)
}

func TestInputSchema(t *testing.T) {
	assert.NoError(t, jobs.Validate(map[string]interface{}{}, inputSchema))
	assert.NoError(t, jobs.Validate(map[string]interface{}{"params": map[string]interface{}{"bust": "abc"}}, inputSchema))

	err := jobs.Validate(map[string]interface{}{"params": []interface{}{1, 2}}, inputSchema)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidDesignInput))
}

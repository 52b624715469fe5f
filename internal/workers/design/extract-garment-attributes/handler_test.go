// internal/workers/design/extract-garment-attributes/handler_test.go
package extractgarmentattributes

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"garment-workers/internal/common/errors"
	commonhttp "garment-workers/internal/common/http"
	"garment-workers/internal/common/logger"
	"garment-workers/internal/garment"
	"garment-workers/internal/workers/design/imageinput"
	"garment-workers/internal/workers/design/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// ==========================
// Test Helper Functions
// ==========================

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestHandler(t *testing.T) *Handler {
	loader := imageinput.NewLoader(commonhttp.NewClient(2*time.Second, 1<<20), 1<<20)
	return NewHandler(LoadConfig(), loader, logger.NewTestLogger(t))
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ==========================
// Execute
// ==========================

func TestExecute_TextOnly(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Text: "酒红色真丝连衣裙，修身，胸围86"})
	require.NoError(t, err)

	attrs := out.Attributes
	assert.Equal(t, "#8B0000", str(attrs.Color))
	assert.Equal(t, garment.GarmentDress, str(attrs.GarmentType))
	assert.Equal(t, garment.FitSlim, str(attrs.Fit))
	require.NotNil(t, attrs.Bust)
	assert.Equal(t, 86.0, *attrs.Bust)
	assert.Nil(t, attrs.Height)
	assert.Contains(t, out.KnownFields, garment.FieldBust)
	assert.NotContains(t, out.KnownFields, garment.FieldHeight)
}

func TestExecute_ListsGarmentOptions(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Text: ""})
	require.NoError(t, err)
	assert.Equal(t, garment.GarmentOptions, out.GarmentOptions)
	assert.Contains(t, out.GarmentOptions, garment.GarmentQipao)

	out.GarmentOptions[0] = "changed"
	assert.Equal(t, garment.GarmentDress, garment.GarmentOptions[0])
}

func TestExecute_InlineImage(t *testing.T) {
	h := newTestHandler(t)
	data := solidPNG(t, 20, 20, color.RGBA{R: 255, A: 255})

	out, err := h.Execute(context.Background(), &Input{
		Text:        "#00FF00 绿色衬衫",
		ImageBase64: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
	})
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", str(out.Attributes.Color))
	assert.Equal(t, garment.GarmentShirt, str(out.Attributes.GarmentType))
}

func TestExecute_ImageURL(t *testing.T) {
	data := solidPNG(t, 40, 80, color.RGBA{G: 128, A: 255})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dress.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{ImageURL: srv.URL + "/dress.png"})
	require.NoError(t, err)
	assert.Equal(t, "#008000", str(out.Attributes.Color))
	assert.Equal(t, garment.GarmentDress, str(out.Attributes.GarmentType))

	_, err = h.Execute(context.Background(), &Input{ImageURL: srv.URL + "/missing.png"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeImageFetchFailed))
}

func observedHandler(cfg *Config) (*Handler, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return NewHandler(cfg, imageinput.NewLoader(nil, 0), logger.NewZapAdapter(zap.New(core))), logs
}

func TestExecute_UndecodableImageIsIgnored(t *testing.T) {
	h, logs := observedHandler(LoadConfig())

	out, err := h.Execute(context.Background(), &Input{
		Text:        "蓝色衬衫",
		ImageBase64: base64.StdEncoding.EncodeToString([]byte("not an image")),
	})
	require.NoError(t, err)
	assert.Equal(t, "#007BFF", str(out.Attributes.Color))

	warned := logs.FilterMessage("reference image ignored").All()
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0].ContextMap()["error"], "decode image")
}

func TestExecute_OversizedImageIsIgnored(t *testing.T) {
	cfg := LoadConfig()
	cfg.Extractor.MaxImagePixels = 100
	h, logs := observedHandler(cfg)

	out, err := h.Execute(context.Background(), &Input{
		Text:        "蓝色衬衫",
		ImageBase64: base64.StdEncoding.EncodeToString(solidPNG(t, 20, 20, color.RGBA{R: 255, A: 255})),
	})
	require.NoError(t, err)
	assert.Equal(t, "#007BFF", str(out.Attributes.Color))

	warned := logs.FilterMessage("reference image ignored").All()
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0].ContextMap()["error"], garment.ErrImageTooLarge.Error())
}

func TestExecute_ValidImageLogsNoWarning(t *testing.T) {
	h, logs := observedHandler(LoadConfig())

	_, err := h.Execute(context.Background(), &Input{
		ImageBase64: base64.StdEncoding.EncodeToString(solidPNG(t, 4, 4, color.White)),
	})
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestExecute_BadBase64(t *testing.T) {
	_, err := newTestHandler(t).Execute(context.Background(), &Input{ImageBase64: "%%%"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeImageDecodeFailed))
}

// ==========================
// Input schema
// ==========================

func TestInputSchema(t *testing.T) {
	assert.NoError(t, jobs.Validate(map[string]interface{}{"text": "白色T恤"}, inputSchema))
	assert.NoError(t, jobs.Validate(map[string]interface{}{"text": "", "imageUrl": nil}, inputSchema))

	err := jobs.Validate(map[string]interface{}{"imageBase64": 12}, inputSchema)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidDesignInput))
}

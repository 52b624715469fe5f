package garment

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	defaultAspectRatioThreshold = 1.4
	defaultColorGrid            = 80
	defaultMaxImagePixels       = 40_000_000
)

// ErrImageTooLarge is returned by DecodeImage when the declared dimensions
// exceed the pixel limit. The pixels are never decoded.
var ErrImageTooLarge = errors.New("image exceeds pixel limit")

// Config tunes the image heuristics of the extractor.
type Config struct {
	// AspectRatioThreshold is the height/width ratio above which a photo is
	// taken to show a full-length garment. It is a weak signal and only used
	// when the text names no garment.
	AspectRatioThreshold float64
	// ColorGrid is the side of the square grid the photo is downsampled to
	// before counting colors.
	ColorGrid int
	// MaxImagePixels bounds width*height of a photo before it is decoded,
	// since a small compressed file can expand to gigabytes.
	MaxImagePixels int64
}

func DefaultConfig() Config {
	return Config{
		AspectRatioThreshold: defaultAspectRatioThreshold,
		ColorGrid:            defaultColorGrid,
		MaxImagePixels:       defaultMaxImagePixels,
	}
}

// Extractor turns a free-form description and an optional photo into
// SparseAttributes. It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	cfg Config
}

func NewExtractor(cfg Config) *Extractor {
	if cfg.AspectRatioThreshold <= 0 {
		cfg.AspectRatioThreshold = defaultAspectRatioThreshold
	}
	if cfg.ColorGrid <= 0 {
		cfg.ColorGrid = defaultColorGrid
	}
	if cfg.MaxImagePixels <= 0 {
		cfg.MaxImagePixels = defaultMaxImagePixels
	}
	return &Extractor{cfg: cfg}
}

// Extract never fails. If anything goes wrong internally the result carries
// only the original text in Notes.
func (e *Extractor) Extract(text string, img image.Image) (attrs SparseAttributes) {
	defer func() {
		if r := recover(); r != nil {
			attrs = SparseAttributes{Notes: text}
		}
	}()

	attrs.Notes = text

	if c, ok := colorFromText(text); ok {
		attrs.Color = strPtr(c)
	}
	if img != nil {
		if c, ok := dominantColor(img, e.cfg.ColorGrid); ok {
			attrs.Color = strPtr(c)
		}
	}

	if g, ok := e.garmentType(text, img); ok {
		attrs.GarmentType = strPtr(g)
	}

	attrs.Fit = strPtr(fitFromText(text))

	if f := fabricPattern.FindString(text); f != "" {
		attrs.Fabric = strPtr(f)
	}

	m := extractMeasurements(text)
	attrs.Height = lookupFloat(m, FieldHeight)
	attrs.Bust = lookupFloat(m, FieldBust)
	attrs.Waist = lookupFloat(m, FieldWaist)
	attrs.Hip = lookupFloat(m, FieldHip)
	attrs.Shoulder = lookupFloat(m, FieldShoulder)
	attrs.TorsoLength = lookupFloat(m, FieldTorsoLength)

	if n, ok := firstFamily(text, neckFamilies); ok {
		attrs.NeckType = strPtr(n)
	}
	if s, ok := firstFamily(text, sleeveFamilies); ok {
		attrs.SleeveLength = strPtr(s)
	}

	attrs.StyleKeywords = styleKeywords(text)
	return attrs
}

// ExtractBytes decodes imageData and extracts from it. Empty, undecodable or
// oversized image data is treated as no image; the returned error says why
// an image was dropped and the attributes are valid either way.
func (e *Extractor) ExtractBytes(text string, imageData []byte) (SparseAttributes, error) {
	img, err := DecodeImage(imageData, e.cfg.MaxImagePixels)
	return e.Extract(text, img), err
}

// DecodeImage decodes PNG, JPEG, GIF, WebP, BMP or TIFF data. It returns
// (nil, nil) for empty input. Images with more than maxPixels pixels are
// rejected from their header alone; maxPixels <= 0 disables the check.
func DecodeImage(data []byte, maxPixels int64) (image.Image, error) {
	if len(data) == 0 {
		return nil, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d > %d", ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func (e *Extractor) garmentType(text string, img image.Image) (string, bool) {
	if g, ok := garmentTerms.lookup(text); ok {
		return g, true
	}
	if g, ok := garmentSynonyms.lookup(text); ok {
		return g, true
	}
	if img == nil {
		return "", false
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return "", false
	}
	if float64(b.Dy())/float64(b.Dx()) > e.cfg.AspectRatioThreshold {
		return GarmentDress, true
	}
	return GarmentShirt, true
}

func fitFromText(text string) string {
	if f, ok := firstFamily(text, []family{slimFit, relaxedFit}); ok {
		return f
	}
	return FitRegular
}

func styleKeywords(text string) []string {
	tags := allFamilies(text, styleHeuristics)
	for _, d := range allFamilies(text, decorationFamilies) {
		if !containsString(tags, d) {
			tags = append(tags, d)
		}
	}
	return tags
}

func lookupFloat(m map[string]float64, field string) *float64 {
	if v, ok := m[field]; ok {
		return floatPtr(v)
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

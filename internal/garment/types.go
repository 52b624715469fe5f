package garment

// Fit buckets understood by the pattern renderer.
const (
	FitSlim    = "Slim"
	FitRegular = "Regular"
	FitRelaxed = "Relaxed"
)

// StatusOptimized marks a parameter set that went through Optimize.
const StatusOptimized = "optimized"

// SparseAttributes is what the extractor could infer from free text and an
// optional photo. A nil field means the slot is unknown.
type SparseAttributes struct {
	GarmentType   *string  `json:"garment_type,omitempty"`
	Fit           *string  `json:"fit,omitempty"`
	Color         *string  `json:"color,omitempty"`
	Fabric        *string  `json:"fabric,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	Bust          *float64 `json:"bust,omitempty"`
	Waist         *float64 `json:"waist,omitempty"`
	Hip           *float64 `json:"hip,omitempty"`
	Shoulder      *float64 `json:"shoulder,omitempty"`
	TorsoLength   *float64 `json:"torso_length,omitempty"`
	NeckType      *string  `json:"neck_type,omitempty"`
	SleeveLength  *string  `json:"sleeve_length,omitempty"`
	StyleKeywords []string `json:"style_keywords,omitempty"`
	Notes         string   `json:"notes"`
}

// RenderHints are display-only surface parameters for the preview.
type RenderHints struct {
	Roughness float64 `json:"roughness"`
	Specular  float64 `json:"specular"`
}

// DenseParameters is a fully resolved parameter set. The renderer reads every
// field and assumes none is missing.
type DenseParameters struct {
	GarmentType     string      `json:"garment_type"`
	Fit             string      `json:"fit"`
	Color           string      `json:"color"`
	Fabric          string      `json:"fabric"`
	Height          float64     `json:"height"`
	Bust            float64     `json:"bust"`
	Waist           float64     `json:"waist"`
	Hip             float64     `json:"hip"`
	Shoulder        float64     `json:"shoulder"`
	TorsoLength     float64     `json:"torso_length"`
	NeckType        string      `json:"neck_type"`
	SleeveLength    string      `json:"sleeve_length"`
	StyleKeywords   []string    `json:"style_keywords"`
	Notes           string      `json:"notes"`
	SeamAllowance   float64     `json:"seam_allowance"`
	Ease            float64     `json:"ease"`
	SleeveWidth     float64     `json:"sleeve_width"`
	SleeveCapHeight float64     `json:"sleeve_cap_height"`
	HemDepth        float64     `json:"hem_depth"`
	RenderHints     RenderHints `json:"render_hints"`
	Status          string      `json:"status"`
}

// Record is the loosely typed merged input handed to Optimize. Values come
// straight from job variables or form fields and may be any JSON type.
type Record map[string]interface{}

// Record field names.
const (
	FieldGarmentType     = "garment_type"
	FieldFit             = "fit"
	FieldColor           = "color"
	FieldFabric          = "fabric"
	FieldHeight          = "height"
	FieldBust            = "bust"
	FieldWaist           = "waist"
	FieldHip             = "hip"
	FieldShoulder        = "shoulder"
	FieldTorsoLength     = "torso_length"
	FieldNeckType        = "neck_type"
	FieldSleeveLength    = "sleeve_length"
	FieldStyleKeywords   = "style_keywords"
	FieldNotes           = "notes"
	FieldSeamAllowance   = "seam_allowance"
	FieldEase            = "ease"
	FieldSleeveWidth     = "sleeve_width"
	FieldSleeveCapHeight = "sleeve_cap_height"
	FieldHemDepth        = "hem_depth"
	FieldRenderHints     = "render_hints"
	FieldStatus          = "status"
)

// legacyAliases maps field names used by older form payloads onto the
// canonical record names.
var legacyAliases = map[string]string{
	"garment":  FieldGarmentType,
	"material": FieldFabric,
	"seam":     FieldSeamAllowance,
	"render":   FieldRenderHints,
}

// CanonicalField resolves legacy aliases. Unknown names are returned as is.
func CanonicalField(name string) string {
	if c, ok := legacyAliases[name]; ok {
		return c
	}
	return name
}

// ToRecord converts the known slots into a Record. Unknown slots are omitted.
func (a SparseAttributes) ToRecord() Record {
	r := Record{FieldNotes: a.Notes}
	putString(r, FieldGarmentType, a.GarmentType)
	putString(r, FieldFit, a.Fit)
	putString(r, FieldColor, a.Color)
	putString(r, FieldFabric, a.Fabric)
	putString(r, FieldNeckType, a.NeckType)
	putString(r, FieldSleeveLength, a.SleeveLength)
	putFloat(r, FieldHeight, a.Height)
	putFloat(r, FieldBust, a.Bust)
	putFloat(r, FieldWaist, a.Waist)
	putFloat(r, FieldHip, a.Hip)
	putFloat(r, FieldShoulder, a.Shoulder)
	putFloat(r, FieldTorsoLength, a.TorsoLength)
	if len(a.StyleKeywords) > 0 {
		tags := make([]string, len(a.StyleKeywords))
		copy(tags, a.StyleKeywords)
		r[FieldStyleKeywords] = tags
	}
	return r
}

// Known returns the names of the slots that were resolved.
func (a SparseAttributes) Known() []string {
	r := a.ToRecord()
	out := make([]string, 0, len(r))
	for _, f := range slotOrder {
		if f == FieldNotes {
			continue
		}
		if _, ok := r[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Record converts dense parameters back into a Record so they can be fed to
// Optimize again.
func (p DenseParameters) Record() Record {
	tags := make([]string, len(p.StyleKeywords))
	copy(tags, p.StyleKeywords)
	return Record{
		FieldGarmentType:     p.GarmentType,
		FieldFit:             p.Fit,
		FieldColor:           p.Color,
		FieldFabric:          p.Fabric,
		FieldHeight:          p.Height,
		FieldBust:            p.Bust,
		FieldWaist:           p.Waist,
		FieldHip:             p.Hip,
		FieldShoulder:        p.Shoulder,
		FieldTorsoLength:     p.TorsoLength,
		FieldNeckType:        p.NeckType,
		FieldSleeveLength:    p.SleeveLength,
		FieldStyleKeywords:   tags,
		FieldNotes:           p.Notes,
		FieldSeamAllowance:   p.SeamAllowance,
		FieldEase:            p.Ease,
		FieldSleeveWidth:     p.SleeveWidth,
		FieldSleeveCapHeight: p.SleeveCapHeight,
		FieldHemDepth:        p.HemDepth,
		FieldRenderHints: map[string]interface{}{
			"roughness": p.RenderHints.Roughness,
			"specular":  p.RenderHints.Specular,
		},
		FieldStatus: p.Status,
	}
}

// slotOrder is the extractor slot order used for logs and metrics.
var slotOrder = []string{
	FieldGarmentType, FieldFit, FieldColor, FieldFabric,
	FieldHeight, FieldBust, FieldWaist, FieldHip,
	FieldShoulder, FieldTorsoLength,
	FieldNeckType, FieldSleeveLength, FieldStyleKeywords, FieldNotes,
}

func putString(r Record, key string, v *string) {
	if v != nil {
		r[key] = *v
	}
}

func putFloat(r Record, key string, v *float64) {
	if v != nil {
		r[key] = *v
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

package garment

import (
	"math"
	"strings"
)

// Flat defaults used when a field is missing from the merged record.
const (
	DefaultHeight          = 165.0
	DefaultBust            = 88.0
	DefaultWaist           = 68.0
	DefaultHip             = 94.0
	DefaultShoulder        = 38.0
	DefaultTorsoLength     = 40.0
	DefaultSeamAllowance   = 1.5
	DefaultEase            = 4.0
	DefaultSleeveWidth     = 24.0
	DefaultSleeveCapHeight = 10.0
	DefaultHemDepth        = 12.0
	DefaultRoughness       = 0.6
	DefaultSpecular        = 0.1

	DefaultGarmentType = GarmentDress
	DefaultFabric      = "纯棉"
	DefaultNeckType    = NeckRound
	DefaultSleeve      = SleeveLong
)

var fitEase = map[string]float64{
	FitSlim:    2.0,
	FitRegular: 4.0,
	FitRelaxed: 8.0,
}

// Optimize resolves every field of the merged record. It never fails: values
// that cannot be coerced fall back to defaults and an internal fault returns
// the all-defaults parameter set. Optimize is idempotent, so feeding its own
// output back in returns the same parameters.
func Optimize(in Record, mode Mode) (out DenseParameters) {
	defer func() {
		if r := recover(); r != nil {
			out = optimize(normalized{}, mode)
		}
	}()
	return optimize(normalize(in), mode)
}

func optimize(n normalized, mode Mode) DenseParameters {
	p := DenseParameters{
		GarmentType:   canonicalOr(n.garmentType, garmentTerms, garmentSynonyms, DefaultGarmentType),
		Fit:           stringOr(n.fit, FitRegular),
		Color:         stringOr(n.color, DefaultColor),
		Fabric:        stringOr(n.fabric, DefaultFabric),
		Height:        n.height.or(DefaultHeight),
		Bust:          n.bust.or(DefaultBust),
		Waist:         n.waist.or(DefaultWaist),
		Hip:           n.hip.or(DefaultHip),
		Shoulder:      n.shoulder.or(0),
		TorsoLength:   n.torsoLength.or(0),
		NeckType:      familyOr(n.neckType, neckFamilies, DefaultNeckType),
		SleeveLength:  familyOr(n.sleeveLength, sleeveFamilies, DefaultSleeve),
		StyleKeywords: n.tags,
		Notes:         n.notes,
		Status:        StatusOptimized,
	}
	if p.StyleKeywords == nil {
		p.StyleKeywords = []string{}
	}

	if p.Shoulder <= 0 {
		p.Shoulder = SuggestShoulder(p.Bust)
	}
	if p.TorsoLength <= 0 {
		p.TorsoLength = SuggestTorsoLength(p.Height)
	}

	p.SeamAllowance = positiveOr(n.seam, SeamAllowanceFor(p.Fabric))

	switch {
	case n.ease.ok && n.ease.v >= 0:
		p.Ease = n.ease.v
	case mode == Assisted:
		p.Ease = EaseForFit(p.Fit)
	default:
		p.Ease = DefaultEase
	}

	p.SleeveWidth = positiveOr(n.sleeveWidth, DefaultSleeveWidth)
	p.SleeveCapHeight = positiveOr(n.capHeight, DefaultSleeveCapHeight)
	p.HemDepth = positiveOr(n.hemDepth, DefaultHemDepth)

	if n.hints != nil {
		p.RenderHints = *n.hints
	} else {
		p.RenderHints = RenderHints{Roughness: DefaultRoughness, Specular: DefaultSpecular}
	}
	return p
}

// SuggestShoulder derives a shoulder width from the bust girth.
func SuggestShoulder(bust float64) float64 {
	if bust <= 0 {
		return DefaultShoulder
	}
	return round1(clamp(bust*0.24, 34, 48))
}

// SuggestTorsoLength derives a torso length from the body height.
func SuggestTorsoLength(height float64) float64 {
	if height <= 0 {
		return DefaultTorsoLength
	}
	return round1(clamp(height*0.24, 28, 50))
}

// SeamAllowanceFor looks the seam allowance up by fabric name.
func SeamAllowanceFor(fabric string) float64 {
	for _, f := range seamFamilies {
		for _, k := range f.keys {
			if containsTerm(strings.ToLower(fabric), k) {
				return f.cm
			}
		}
	}
	return DefaultSeamAllowance
}

// EaseForFit is the assisted-mode ease for a fit bucket.
func EaseForFit(fit string) float64 {
	if e, ok := fitEase[fit]; ok {
		return e
	}
	return DefaultEase
}

func canonicalOr(s string, primary, fallback *lexicon, def string) string {
	if s == "" {
		return def
	}
	if v, ok := primary.lookup(s); ok {
		return v
	}
	if v, ok := fallback.lookup(s); ok {
		return v
	}
	return s
}

func familyOr(s string, families []family, def string) string {
	if s == "" {
		return def
	}
	if v, ok := firstFamily(s, families); ok {
		return v
	}
	return s
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func positiveOr(o optFloat, def float64) float64 {
	if o.ok && o.v > 0 {
		return o.v
	}
	return def
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return roundTo(v, 1)
}

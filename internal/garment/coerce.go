package garment

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// optFloat is a numeric field that may be unset.
type optFloat struct {
	v  float64
	ok bool
}

func (o optFloat) or(def float64) float64 {
	if o.ok {
		return o.v
	}
	return def
}

// normalized is a Record after the single coercion pass. Empty strings and
// unset optFloats mean the field was missing or could not be coerced.
type normalized struct {
	garmentType  string
	fit          string
	color        string
	fabric       string
	neckType     string
	sleeveLength string
	notes        string
	tags         []string
	hints        *RenderHints

	height, bust, waist, hip optFloat
	shoulder, torsoLength    optFloat
	seam, ease               optFloat
	sleeveWidth, capHeight   optFloat
	hemDepth                 optFloat
}

// normalize is the only place Record values are read. Every field goes
// through exactly one coercer for its type.
func normalize(in Record) normalized {
	r := canonicalRecord(in)
	return normalized{
		garmentType:  coerceString(r[FieldGarmentType]),
		fit:          coerceFit(r[FieldFit]),
		color:        coerceColor(r[FieldColor]),
		fabric:       coerceString(r[FieldFabric]),
		neckType:     coerceString(r[FieldNeckType]),
		sleeveLength: coerceString(r[FieldSleeveLength]),
		notes:        coerceString(r[FieldNotes]),
		tags:         coerceTags(r[FieldStyleKeywords]),
		hints:        coerceHints(r[FieldRenderHints]),
		height:       coerceFloat(r[FieldHeight]),
		bust:         coerceFloat(r[FieldBust]),
		waist:        coerceFloat(r[FieldWaist]),
		hip:          coerceFloat(r[FieldHip]),
		shoulder:     coerceFloat(r[FieldShoulder]),
		torsoLength:  coerceFloat(r[FieldTorsoLength]),
		seam:         coerceFloat(r[FieldSeamAllowance]),
		ease:         coerceFloat(r[FieldEase]),
		sleeveWidth:  coerceFloat(r[FieldSleeveWidth]),
		capHeight:    coerceFloat(r[FieldSleeveCapHeight]),
		hemDepth:     coerceFloat(r[FieldHemDepth]),
	}
}

// canonicalRecord rewrites legacy aliases. A canonical key beats its alias.
func canonicalRecord(in Record) Record {
	out := make(Record, len(in))
	for k, v := range in {
		if c := CanonicalField(k); c != k {
			if _, exists := in[c]; exists {
				continue
			}
			out[c] = v
			continue
		}
		out[k] = v
	}
	return out
}

// coerceFloat accepts numbers and numeric strings. Nil, booleans, blank or
// non-numeric strings and non-finite values are unset.
func coerceFloat(v interface{}) optFloat {
	switch t := v.(type) {
	case nil, bool:
		return optFloat{}
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimSuffix(strings.TrimSuffix(s, "cm"), "厘米")
		if s = strings.TrimSpace(s); s == "" {
			return optFloat{}
		}
		v = s
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return optFloat{}
	}
	return optFloat{v: f, ok: true}
}

func coerceString(v interface{}) string {
	switch v.(type) {
	case nil, bool, map[string]interface{}, []interface{}:
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// coerceColor accepts hex codes and known color names and returns an
// uppercase hex code.
func coerceColor(v interface{}) string {
	s := coerceString(v)
	if s == "" {
		return ""
	}
	if hexExact.MatchString(s) {
		return strings.ToUpper(s)
	}
	if c, ok := colorTerms.lookup(s); ok {
		return c
	}
	return ""
}

func coerceFit(v interface{}) string {
	s := coerceString(v)
	if s == "" {
		return ""
	}
	if f, ok := firstFamily(s, []family{slimFit, relaxedFit, regularFit}); ok {
		return f
	}
	return ""
}

// coerceTags accepts a list of strings or a comma separated string. Blank
// and repeated tags are dropped.
func coerceTags(v interface{}) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		raw = strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == '，' || r == '、' })
	default:
		s, err := cast.ToStringSliceE(v)
		if err != nil {
			return nil
		}
		raw = s
	}
	var out []string
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag != "" && !containsString(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}

func coerceHints(v interface{}) *RenderHints {
	switch t := v.(type) {
	case RenderHints:
		return &t
	case *RenderHints:
		return t
	}
	m, err := cast.ToStringMapE(v)
	if err != nil || v == nil {
		return nil
	}
	rough := coerceFloat(m["roughness"])
	spec := coerceFloat(m["specular"])
	if !rough.ok || !spec.ok {
		return nil
	}
	return &RenderHints{Roughness: rough.v, Specular: spec.v}
}

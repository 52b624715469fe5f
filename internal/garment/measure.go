package garment

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// span is a byte range [start, end) in the description text.
type span struct{ start, end int }

func (s span) overlaps(o span) bool { return s.start < o.end && o.start < s.end }

type measureSlot struct {
	field    string
	labels   []string
	min, max float64
	decimals int
}

// measureSlots lists the labeled measurements. Order matters for labels that
// share a prefix: "shoulder width" is tried before "shoulder".
var measureSlots = []measureSlot{
	{FieldHeight, []string{"身高", "height"}, 50, 250, 0},
	{FieldBust, []string{"胸围", "bust", "chest"}, 40, 200, 0},
	{FieldWaist, []string{"腰围", "waist"}, 30, 200, 0},
	{FieldHip, []string{"臀围", "hips", "hip"}, 40, 220, 0},
	{FieldShoulder, []string{"肩宽", "shoulder width", "shoulder"}, 20, 70, 1},
	{FieldTorsoLength, []string{"上身长", "衣长", "torso length", "body length", "torso"}, 15, 90, 1},
}

// positionalFields receive unlabeled numbers, in this order.
var positionalFields = []string{FieldHeight, FieldBust, FieldWaist, FieldHip}

// unitGroup follows the number. A bare "in" only counts when attached to it
// ("34in"), so "waist 70 in slim fit" stays in centimeters.
const unitGroup = `(?:\s*(厘米|公分|毫米|英寸|cm|mm|inches|inch|")|(in)\b)?`

var labeledPatterns = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(measureSlots))
	for _, s := range measureSlots {
		quoted := make([]string, len(s.labels))
		for i, l := range s.labels {
			quoted[i] = regexp.QuoteMeta(l)
			if isWordByte(l[0]) {
				quoted[i] = `\b` + quoted[i]
			}
		}
		out[s.field] = regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") +
			`)\s*(?:[:：=]\s*)?(\d+(?:\.\d+)?)` + unitGroup)
	}
	return out
}()

var numberToken = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)` + unitGroup)

func slotByField(field string) measureSlot {
	for _, s := range measureSlots {
		if s.field == field {
			return s
		}
	}
	return measureSlot{}
}

// toCentimeters converts a value in the given unit token. An empty unit is
// taken as centimeters.
func toCentimeters(v float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "mm", "毫米":
		return v / 10
	case "in", "inch", "inches", "英寸", `"`:
		return v * 2.54
	default:
		return v
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// plausible converts and range-checks a measurement for a slot.
func (s measureSlot) plausible(raw float64, unit string) (float64, bool) {
	v := roundTo(toCentimeters(raw, unit), s.decimals)
	if v < s.min || v > s.max {
		return 0, false
	}
	return v, true
}

// unitOf returns the unit token of a match from labeledPatterns or
// numberToken, or "" when there is none.
func unitOf(text string, m []int) string {
	for i := 4; i+1 < len(m); i += 2 {
		if m[i] >= 0 {
			return text[m[i]:m[i+1]]
		}
	}
	return ""
}

func integerDigits(num string) int {
	if i := strings.IndexByte(num, '.'); i >= 0 {
		return i
	}
	return len(num)
}

// extractMeasurements runs the labeled pass and then the positional pass.
// The returned map holds only slots that resolved to a plausible value.
func extractMeasurements(text string) map[string]float64 {
	out := make(map[string]float64)
	var consumed []span

	for _, s := range measureSlots {
		matches := labeledPatterns[s.field].FindAllStringSubmatchIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		// Repeated labels never feed the positional pass; the first one wins.
		for _, m := range matches {
			consumed = append(consumed, span{m[2], m[3]})
		}
		m := matches[0]
		num := text[m[2]:m[3]]
		if integerDigits(num) > 3 {
			continue
		}
		raw, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		unit := unitOf(text, m)
		if v, ok := s.plausible(raw, unit); ok {
			out[s.field] = v
		}
	}

	missing := false
	for _, f := range positionalFields {
		if _, ok := out[f]; !ok {
			missing = true
			break
		}
	}
	if !missing {
		return out
	}

	for _, m := range hexInText.FindAllStringIndex(text, -1) {
		consumed = append(consumed, span{m[0], m[1]})
	}

	idx := 0
	for _, m := range numberToken.FindAllStringSubmatchIndex(text, -1) {
		if idx >= len(positionalFields) {
			break
		}
		tok := span{m[2], m[3]}
		if overlapsAny(tok, consumed) {
			continue
		}
		num := text[m[2]:m[3]]
		if d := integerDigits(num); d < 2 || d > 3 {
			continue
		}
		field := positionalFields[idx]
		idx++
		if _, ok := out[field]; ok {
			continue
		}
		raw, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		unit := unitOf(text, m)
		if v, ok := slotByField(field).plausible(raw, unit); ok {
			out[field] = v
		}
	}
	return out
}

func overlapsAny(s span, others []span) bool {
	for _, o := range others {
		if s.overlaps(o) {
			return true
		}
	}
	return false
}

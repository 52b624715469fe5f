package garment

import "reflect"

// Slot sources reported by Sources.
const (
	SourceExtracted = "extracted"
	SourceExplicit  = "explicit"
	SourceDefault   = "default"
)

// resolvedFields are the record fields Optimize fills when they are missing.
var resolvedFields = []string{
	FieldGarmentType, FieldFit, FieldColor, FieldFabric,
	FieldHeight, FieldBust, FieldWaist, FieldHip,
	FieldShoulder, FieldTorsoLength,
	FieldNeckType, FieldSleeveLength,
	FieldSeamAllowance, FieldEase, FieldSleeveWidth, FieldSleeveCapHeight, FieldHemDepth,
	FieldRenderHints,
}

// Defaulted lists the fields of r that Optimize will fill from defaults or
// derivation rules, in field order. Aliases count as present.
func Defaulted(r Record) []string {
	present := canonicalRecord(r)
	var out []string
	for _, f := range resolvedFields {
		if isBlank(present[f]) {
			out = append(out, f)
		}
	}
	return out
}

// Sources reports where each slot of a merged record came from: the
// extractor, an explicit form field, or neither.
func Sources(extracted SparseAttributes, merged Record) map[string]string {
	base := extracted.ToRecord()
	out := make(map[string]string, len(slotOrder))
	for _, f := range slotOrder {
		if f == FieldNotes {
			continue
		}
		v, inMerged := merged[f]
		ev, inBase := base[f]
		switch {
		case !inMerged || isBlank(v):
			out[f] = SourceDefault
		case inBase && reflect.DeepEqual(v, ev):
			out[f] = SourceExtracted
		default:
			out[f] = SourceExplicit
		}
	}
	return out
}

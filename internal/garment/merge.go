package garment

import "strings"

// LockSet holds the field names the form layer has locked.
type LockSet map[string]struct{}

func NewLockSet(fields ...string) LockSet {
	s := make(LockSet, len(fields))
	for _, f := range fields {
		s[CanonicalField(strings.TrimSpace(f))] = struct{}{}
	}
	return s
}

func (s LockSet) Has(field string) bool {
	_, ok := s[CanonicalField(field)]
	return ok
}

// Merge combines extracted attributes with explicit form fields into the
// record passed to Optimize.
//
// With a nil LockSet every explicit field overrides the extracted value.
// With a LockSet only locked fields override; other explicit fields fill
// slots the extractor left unknown. Blank explicit values never erase an
// extracted one.
func Merge(extracted SparseAttributes, explicit Record, locked LockSet) Record {
	base := extracted.ToRecord()
	out := make(Record, len(base)+len(explicit))
	for k, v := range base {
		out[k] = v
	}
	apply := func(key string, v interface{}) {
		if isBlank(v) {
			return
		}
		if _, known := base[key]; known && locked != nil && !locked.Has(key) {
			return
		}
		out[key] = v
	}
	// Aliases first so a canonical key in the same payload wins.
	for k, v := range explicit {
		if c := CanonicalField(k); c != k {
			apply(c, v)
		}
	}
	for k, v := range explicit {
		if CanonicalField(k) == k {
			apply(k, v)
		}
	}
	return out
}

func isBlank(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

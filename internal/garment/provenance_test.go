package garment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaulted(t *testing.T) {
	assert.Equal(t, resolvedFields, Defaulted(nil))

	d := Defaulted(Record{
		FieldColor:  "#FFFFFF",
		"material":  "牛仔",
		FieldHeight: 170,
		FieldBust:   "",
	})
	assert.NotContains(t, d, FieldColor)
	assert.NotContains(t, d, FieldFabric)
	assert.NotContains(t, d, FieldHeight)
	assert.Contains(t, d, FieldBust)
	assert.Contains(t, d, FieldSeamAllowance)

	assert.Empty(t, Defaulted(Optimize(nil, Assisted).Record()))
}

func TestSources(t *testing.T) {
	extracted := extractedFixture()
	merged := Merge(extracted, Record{FieldColor: "#000000", FieldHeight: 170}, nil)

	s := Sources(extracted, merged)

	assert.Equal(t, SourceExtracted, s[FieldGarmentType])
	assert.Equal(t, SourceExtracted, s[FieldBust])
	assert.Equal(t, SourceExplicit, s[FieldColor])
	assert.Equal(t, SourceExplicit, s[FieldHeight])
	assert.Equal(t, SourceDefault, s[FieldFabric])
	assert.Equal(t, SourceDefault, s[FieldStyleKeywords])
	_, hasNotes := s[FieldNotes]
	assert.False(t, hasNotes)
}

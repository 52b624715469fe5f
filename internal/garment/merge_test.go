package garment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func extractedFixture() SparseAttributes {
	return SparseAttributes{
		GarmentType: strPtr(GarmentDress),
		Color:       strPtr("#8B0000"),
		Bust:        floatPtr(86),
		Notes:       "酒红色连衣裙 胸围86",
	}
}

func TestMerge_ExplicitFieldsWinWithoutLocks(t *testing.T) {
	r := Merge(extractedFixture(), Record{
		FieldColor:  "#000000",
		FieldHeight: 170,
	}, nil)

	assert.Equal(t, "#000000", r[FieldColor])
	assert.Equal(t, 170, r[FieldHeight])
	assert.Equal(t, 86.0, r[FieldBust])
	assert.Equal(t, GarmentDress, r[FieldGarmentType])
	assert.Equal(t, "酒红色连衣裙 胸围86", r[FieldNotes])
}

func TestMerge_OnlyLockedFieldsOverride(t *testing.T) {
	r := Merge(extractedFixture(), Record{
		FieldColor:       "#000000",
		FieldGarmentType: GarmentShirt,
		FieldHeight:      170,
	}, NewLockSet("color"))

	assert.Equal(t, "#000000", r[FieldColor])
	assert.Equal(t, GarmentDress, r[FieldGarmentType])
	assert.Equal(t, 170, r[FieldHeight])
}

func TestMerge_BlankExplicitValuesIgnored(t *testing.T) {
	r := Merge(extractedFixture(), Record{
		FieldColor:  "",
		FieldBust:   nil,
		FieldFabric: "  ",
	}, nil)

	assert.Equal(t, "#8B0000", r[FieldColor])
	assert.Equal(t, 86.0, r[FieldBust])
	_, hasFabric := r[FieldFabric]
	assert.False(t, hasFabric)
}

func TestMerge_LegacyAliases(t *testing.T) {
	r := Merge(SparseAttributes{}, Record{
		"garment":   "shirt",
		"material":  "牛仔",
		FieldFabric: "真丝",
	}, NewLockSet("garment"))

	assert.Equal(t, "shirt", r[FieldGarmentType])
	assert.Equal(t, "真丝", r[FieldFabric])
	_, hasAlias := r["material"]
	assert.False(t, hasAlias)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	extracted := extractedFixture()
	explicit := Record{FieldColor: "#000000"}

	_ = Merge(extracted, explicit, nil)

	assert.Equal(t, "#8B0000", *extracted.Color)
	assert.Len(t, explicit, 1)
}

func TestLockSet(t *testing.T) {
	s := NewLockSet("material", " height ")

	assert.True(t, s.Has(FieldFabric))
	assert.True(t, s.Has("material"))
	assert.True(t, s.Has(FieldHeight))
	assert.False(t, s.Has(FieldBust))
}

func TestSparseAttributes_ToRecord(t *testing.T) {
	a := extractedFixture()
	a.StyleKeywords = []string{"刺绣"}
	r := a.ToRecord()

	assert.Len(t, r, 5)
	assert.Equal(t, []string{"刺绣"}, r[FieldStyleKeywords])
	assert.Equal(t, []string{FieldGarmentType, FieldColor, FieldBust, FieldStyleKeywords}, a.Known())
}

func TestCheckMeasurements(t *testing.T) {
	assert.Empty(t, CheckMeasurements(Optimize(nil, Professional)))

	p := Optimize(Record{FieldBust: 80, FieldWaist: 95, FieldHip: 90}, Professional)
	warnings := CheckMeasurements(p)
	if assert.Len(t, warnings, 2) {
		assert.Equal(t, WarnWaistExceedsBust, warnings[0].Code)
		assert.Equal(t, FieldWaist, warnings[0].Field)
		assert.Equal(t, WarnHipBelowWaist, warnings[1].Code)
	}

	p = Optimize(Record{FieldBust: 45, FieldShoulder: 46, FieldWaist: 40, FieldHip: 50}, Professional)
	warnings = CheckMeasurements(p)
	if assert.Len(t, warnings, 1) {
		assert.Equal(t, WarnShoulderExceedsBust, warnings[0].Code)
	}
}

func TestContainsTerm(t *testing.T) {
	assert.True(t, containsTerm("a red dress", "red"))
	assert.False(t, containsTerm("tired", "red"))
	assert.False(t, containsTerm("redish", "red"))
	assert.True(t, containsTerm("酒红色", "红"))
	assert.True(t, containsTerm("t-shirt", "shirt"))
	assert.False(t, containsTerm("", "red"))
}

func TestLongestFirstLexicon(t *testing.T) {
	l := newLongestFirstLexicon([]term{
		{"蓝", "generic"},
		{"深蓝", "navy"},
		{"dark blue", "navy-en"},
	})

	v, ok := l.lookup("深蓝色")
	assert.True(t, ok)
	assert.Equal(t, "navy", v)

	v, _ = l.lookup("DARK BLUE coat")
	assert.Equal(t, "navy-en", v)

	_, ok = l.lookup("绿色")
	assert.False(t, ok)
}

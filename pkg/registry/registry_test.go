// pkg/registry/registry_test.go
package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{ID: "design.garment.extract", DisplayName: "Extract", TaskType: "extract-garment-attributes", Category: "design"},
			{ID: "design.garment.optimize", DisplayName: "Optimize", TaskType: "optimize-garment-parameters", Category: "design"},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	require.NoError(t, testRegistry().Save(path))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, testRegistry(), reg)
}

func TestLoadRegistry_Missing(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestFindAndMissing(t *testing.T) {
	reg := testRegistry()

	a, ok := reg.Find("optimize-garment-parameters")
	require.True(t, ok)
	assert.Equal(t, "design.garment.optimize", a.ID)

	assert.Equal(t,
		[]string{"check-measurements", "design-garment"},
		reg.Missing([]string{"extract-garment-attributes", "design-garment", "check-measurements"}),
	)
	assert.Empty(t, reg.Missing([]string{"extract-garment-attributes"}))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, testRegistry().Validate())
	assert.EqualError(t, (&ActivityRegistry{}).Validate(), "registry contains no activities")

	dup := testRegistry()
	dup.Activities[1].ID = dup.Activities[0].ID
	assert.EqualError(t, dup.Validate(), "duplicate activity ID: design.garment.extract")

	noType := testRegistry()
	noType.Activities[0].TaskType = ""
	assert.EqualError(t, noType.Validate(), "activity design.garment.extract missing required field: TaskType")
}

func TestValidate_StatusAndTimeout(t *testing.T) {
	badStatus := testRegistry()
	badStatus.Activities[1].ImplementationStatus = "done"
	assert.EqualError(t, badStatus.Validate(), "activity design.garment.optimize has unknown implementation status: done")

	badTimeout := testRegistry()
	badTimeout.Activities[0].Timeout = "ten seconds"
	assert.ErrorContains(t, badTimeout.Validate(), `invalid timeout "ten seconds"`)
}

func TestActivity_Helpers(t *testing.T) {
	a := Activity{ID: "design.garment.record", Timeout: "10s", ImplementationStatus: StatusCompleted}
	d, err := a.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)
	assert.True(t, a.Implemented())

	d, err = Activity{}.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)
	assert.False(t, Activity{ImplementationStatus: StatusPlanned}.Implemented())

	assert.True(t, ValidStatus(StatusInProgress))
	assert.False(t, ValidStatus("Completed"))
}

// cmd/tools/registry-updater/main_test.go
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"garment-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUpdateValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	var out bytes.Buffer

	require.NoError(t, run([]string{"add", "-path", path,
		"-id", "design.garment.extract",
		"-displayName", "Extract Garment Attributes",
		"-description", "Infers garment attributes",
		"-category", "design",
		"-taskType", "extract-garment-attributes",
	}, &out))
	assert.Contains(t, out.String(), "Added activity: design.garment.extract")

	require.NoError(t, run([]string{"update", "-path", path, "-id", "design.garment.extract", "-field", "retries", "-value", "3"}, &out))

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	a, ok := reg.Find("extract-garment-attributes")
	require.True(t, ok)
	assert.Equal(t, 3, a.Retries)

	out.Reset()
	require.NoError(t, run([]string{"validate", "-path", path}, &out))
	assert.Contains(t, out.String(), "Found 1 activities")
}

func TestAdd_Rejections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	args := []string{"add", "-path", path,
		"-id", "design.garment.check",
		"-displayName", "Check", "-description", "d", "-category", "design", "-taskType", "check-measurements",
	}
	var out bytes.Buffer
	require.NoError(t, run(args, &out))
	assert.ErrorContains(t, run(args, &out), "already exists")

	bad := append([]string{}, args...)
	bad[4] = "Design-Garment"
	assert.ErrorContains(t, run(bad, &out), "domain.subdomain.action")
}

func TestUpdate_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, (&registry.ActivityRegistry{Activities: []registry.Activity{
		{ID: "design.garment.check", DisplayName: "Check", TaskType: "check-measurements", Category: "design"},
	}}).Save(path))

	var out bytes.Buffer
	assert.ErrorContains(t, run([]string{"update", "-path", path, "-id", "nope.nope.nope", "-field", "status", "-value", "x"}, &out), "not found")
	assert.ErrorContains(t, run([]string{"update", "-path", path, "-id", "design.garment.check", "-field", "color", "-value", "x"}, &out), "unknown field")
	assert.ErrorContains(t, run([]string{"update", "-path", path, "-id", "design.garment.check", "-field", "timeout", "-value", "soon"}, &out), "invalid timeout")
	assert.ErrorContains(t, run([]string{"update", "-path", path, "-id", "design.garment.check", "-field", "status", "-value", "done"}, &out), "unknown status")
}

func TestValidate_ShippedRegistry(t *testing.T) {
	path := filepath.Join("..", "..", "..", "configs", "activity-registry.json")
	if _, err := os.Stat(path); err != nil {
		t.Skip("registry not found")
	}
	var out bytes.Buffer
	require.NoError(t, run([]string{"validate", "-path", path}, &out))
	assert.Contains(t, out.String(), "Found 5 activities")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cubit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, RuntimeHost, cfg.Runtime)
	assert.Equal(t, PrecisionFloat32, cfg.Precision)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "runtime: webgpu\nverbose: true\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, RuntimeWebGPU, cfg.Runtime)
	// Absent fields keep defaults.
	assert.Equal(t, PrecisionFloat32, cfg.Precision)
	assert.True(t, cfg.Verbose)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsUnknownNames(t *testing.T) {
	_, err := Load(writeConfig(t, "runtime: cuda\n"))
	assert.ErrorContains(t, err, "unknown runtime")

	_, err = Load(writeConfig(t, "precision: float16\n"))
	assert.ErrorContains(t, err, "unknown precision")
}

func TestValidateRejectsWebGPUFloat64(t *testing.T) {
	_, err := Load(writeConfig(t, "runtime: webgpu\nprecision: float64\n"))
	assert.ErrorContains(t, err, "float64")
}

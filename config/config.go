// Package config loads the runtime selection file used by the cubit CLI
// and by embedding applications that want file-driven device setup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Runtime names accepted in the config file.
const (
	RuntimeHost   = "host"
	RuntimeWebGPU = "webgpu"
)

// Precision names accepted in the config file.
const (
	PrecisionFloat32 = "float32"
	PrecisionFloat64 = "float64"
)

// Config selects the execution backend and element width.
type Config struct {
	// Runtime picks the device backend: "host" or "webgpu".
	Runtime string `yaml:"runtime"`
	// Precision picks the element width: "float32" or "float64". The
	// webgpu runtime only supports float32.
	Precision string `yaml:"precision"`
	// Verbose enables per-command diagnostics on stderr.
	Verbose bool `yaml:"verbose"`
}

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{Runtime: RuntimeHost, Precision: PrecisionFloat32}
}

// Load reads and validates a YAML config file. Fields absent from the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unknown names and impossible combinations.
func (c Config) Validate() error {
	switch c.Runtime {
	case RuntimeHost, RuntimeWebGPU:
	default:
		return fmt.Errorf("unknown runtime %q", c.Runtime)
	}
	switch c.Precision {
	case PrecisionFloat32, PrecisionFloat64:
	default:
		return fmt.Errorf("unknown precision %q", c.Precision)
	}
	if c.Runtime == RuntimeWebGPU && c.Precision == PrecisionFloat64 {
		return fmt.Errorf("the webgpu runtime has no float64 kernels")
	}
	return nil
}

package testsupport

import (
	"path/filepath"
	"testing"

	"cratesync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.PioneerDir = filepath.Join(base, "pioneer")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Export.BasePaths = []string{filepath.Join(base, "music")}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBasePaths overrides the source base paths on the test config.
func WithBasePaths(paths ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.BasePaths = paths
	}
}

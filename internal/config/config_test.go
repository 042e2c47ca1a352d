package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/petro_engine_go/internal/clayvolume"
	"github.com/user/petro_engine_go/internal/permeability"
	"github.com/user/petro_engine_go/internal/porosity"
	"github.com/user/petro_engine_go/internal/saturation"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.HistorySize)

	p, err := cfg.ClayVolume.Params()
	require.NoError(t, err)
	assert.Equal(t, clayvolume.DefaultParams(), p)

	cp, err := cfg.Porosity.CombinedParams()
	require.NoError(t, err)
	assert.Equal(t, porosity.DefaultCombinedParams(), cp)

	assert.Equal(t, saturation.DefaultParams(), cfg.Saturation.Params())
	m, err := cfg.Saturation.Model()
	require.NoError(t, err)
	assert.Equal(t, saturation.ArchieSimple, m)

	pp, err := cfg.Permeability.Params()
	require.NoError(t, err)
	assert.Equal(t, permeability.DefaultParams(permeability.Sandstone), pp)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"zero archie a", func(c *Config) { c.Saturation.A = 0 }, "saturation.a"},
		{"negative m", func(c *Config) { c.Saturation.M = -2 }, "saturation.m"},
		{"zero rw", func(c *Config) { c.Saturation.Rw = 0 }, "saturation.rw"},
		{"unknown sw method", func(c *Config) { c.Saturation.Method = "archie_fancy" }, "saturation.method"},
		{"unknown perm method", func(c *Config) { c.Permeability.Method = "darcy" }, "permeability.method"},
		{"unknown vcl method", func(c *Config) { c.ClayVolume.Method = "quadratic" }, "clay_volume.method"},
		{"percentiles reversed", func(c *Config) { c.ClayVolume.ClayPercentile = 2 }, "clay_volume.clay_percentile"},
		{"fluid denser than matrix", func(c *Config) { c.Porosity.FluidDensity = 3 }, "porosity.fluid_density"},
		{"bad combination", func(c *Config) { c.Porosity.Combination = "median" }, "porosity.combination"},
		{"swi above one", func(c *Config) { c.Permeability.Swi = 1.2 }, "permeability.swi"},
		{"bad rock type", func(c *Config) { c.Permeability.RockType = "granite" }, "permeability.rock_type"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"zero history", func(c *Config) { c.HistorySize = 0 }, "history_size"},
		{"no gr mnemonics", func(c *Config) { c.Curves.GR = nil }, "curves.gr"},
		{"zero pay step", func(c *Config) { c.Lithology.Pay.Step = 0 }, "lithology.pay.step"},
		{"bad fluid", func(c *Config) { c.Lithology.Fluid = "brine" }, "lithology.fluid"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mod(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestNewValidatorRegistersMethodTags(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = newValidator() })

	for _, tc := range []struct{ tag, good, bad string }{
		{"vcl_method", "steiber", "quadratic"},
		{"sw_method", "simandoux", "archie_fancy"},
		{"perm_method", "timur", "darcy"},
	} {
		t.Run(tc.tag, func(t *testing.T) {
			assert.NoError(t, v.Var(tc.good, tc.tag))
			assert.Error(t, v.Var(tc.bad, tc.tag))
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "petrocalc.yaml")
	data := `
logging:
  level: debug
clay_volume:
  method: steiber
  gr_clean: 20
  gr_clay: 140
saturation:
  rw: 0.08
permeability:
  rock_type: carbonate
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Encoding)
	assert.Equal(t, 0.08, cfg.Saturation.Rw)
	assert.Equal(t, 2.0, cfg.Saturation.N)

	p, err := cfg.ClayVolume.Params()
	require.NoError(t, err)
	assert.Equal(t, clayvolume.Steiber, p.Method)
	assert.Equal(t, clayvolume.Provided(20), p.GRClean)
	assert.Equal(t, clayvolume.Provided(140), p.GRClay)

	pp, err := cfg.Permeability.Params()
	require.NoError(t, err)
	assert.Equal(t, permeability.DefaultTimurParams(permeability.Carbonate), pp.Timur)

	require.NoError(t, os.WriteFile(path, []byte("saturation:\n  a: -1\n"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "saturation.a")

	require.NoError(t, os.WriteFile(path, []byte("saturation: [\n"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "failed to parse config file")

	_, err = LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestSaveToFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "petrocalc.yaml")
	cfg := DefaultConfig()
	cfg.Porosity.Combination = porosity.Geometric.String()
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

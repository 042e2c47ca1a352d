// Package config provides configuration loading and validation for petrocalc.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/user/petro_engine_go/internal/analysis"
	"github.com/user/petro_engine_go/internal/clayvolume"
	"github.com/user/petro_engine_go/internal/lithology"
	"github.com/user/petro_engine_go/internal/permeability"
	"github.com/user/petro_engine_go/internal/porosity"
	"github.com/user/petro_engine_go/internal/saturation"
)

// Config represents the complete petrocalc configuration
type Config struct {
	Logging      LoggingConfig      `yaml:"logging"`
	HistorySize  int                `yaml:"history_size" validate:"min=1,max=10000"`
	Curves       CurveConfig        `yaml:"curves"`
	ClayVolume   ClayVolumeConfig   `yaml:"clay_volume"`
	Porosity     PorosityConfig     `yaml:"porosity"`
	Saturation   SaturationConfig   `yaml:"saturation"`
	Permeability PermeabilityConfig `yaml:"permeability"`
	Lithology    LithologyConfig    `yaml:"lithology"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	// Encoding is json or console
	Encoding string `yaml:"encoding" validate:"oneof=json console"`
	// Development switches to the zap development preset
	Development bool `yaml:"development"`
}

// CurveConfig maps each input to the mnemonics tried, in order, when
// reading a curve table
type CurveConfig struct {
	Depth []string `yaml:"depth" validate:"dive,required"`
	GR    []string `yaml:"gr" validate:"min=1,dive,required"`
	RHOB  []string `yaml:"rhob" validate:"min=1,dive,required"`
	NPHI  []string `yaml:"nphi" validate:"min=1,dive,required"`
	RT    []string `yaml:"rt" validate:"min=1,dive,required"`
	PE    []string `yaml:"pe" validate:"min=1,dive,required"`
}

// ClayVolumeConfig configures the gamma-ray clay volume. A nil reference is
// estimated from the given percentile.
type ClayVolumeConfig struct {
	Method          string   `yaml:"method" validate:"vcl_method"`
	GRClean         *float64 `yaml:"gr_clean,omitempty"`
	GRClay          *float64 `yaml:"gr_clay,omitempty"`
	CleanPercentile float64  `yaml:"clean_percentile" validate:"gte=0,lte=100"`
	ClayPercentile  float64  `yaml:"clay_percentile" validate:"gte=0,lte=100,gtfield=CleanPercentile"`
}

// PorosityConfig configures density, neutron and combined porosity
type PorosityConfig struct {
	MatrixDensity       float64 `yaml:"matrix_density" validate:"gt=0"`
	FluidDensity        float64 `yaml:"fluid_density" validate:"gt=0,ltfield=MatrixDensity"`
	Lithology           string  `yaml:"lithology" validate:"oneof=sandstone limestone dolomite"`
	Combination         string  `yaml:"combination" validate:"oneof=arithmetic geometric harmonic"`
	ApplyClayCorrection bool    `yaml:"apply_clay_correction"`
	ApplyGasCorrection  bool    `yaml:"apply_gas_correction"`
	GasCorrectionFactor float64 `yaml:"gas_correction_factor" validate:"gte=0"`
}

// SaturationConfig configures the water saturation model
type SaturationConfig struct {
	Method                string  `yaml:"method" validate:"sw_method"`
	A                     float64 `yaml:"a" validate:"gt=0"`
	M                     float64 `yaml:"m" validate:"gt=0"`
	N                     float64 `yaml:"n" validate:"gt=0"`
	Rw                    float64 `yaml:"rw" validate:"gt=0"`
	Rsh                   float64 `yaml:"rsh" validate:"gt=0"`
	DisableClayCorrection bool    `yaml:"disable_clay_correction"`
}

// PermeabilityConfig configures the permeability correlation
type PermeabilityConfig struct {
	Method   string  `yaml:"method" validate:"perm_method"`
	RockType string  `yaml:"rock_type" validate:"oneof=sandstone carbonate shaly_sand"`
	Swi      float64 `yaml:"swi" validate:"gt=0,lte=1"`
	Sorting  float64 `yaml:"sorting" validate:"gt=0"`
}

// LithologyConfig configures the lithology analyzer
type LithologyConfig struct {
	Fluid string                   `yaml:"fluid" validate:"oneof=fresh_water salt_water oil gas"`
	Pay   lithology.PayCutoffs     `yaml:"pay"`
	Hard  lithology.HardThresholds `yaml:"hard"`
}

// DefaultConfig returns a Config with the calculators' defaults
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		HistorySize: analysis.DefaultHistorySize,
		Curves: CurveConfig{
			Depth: []string{"DEPTH", "DEPT", "MD"},
			GR:    []string{"GR", "SGR", "CGR"},
			RHOB:  []string{"RHOB", "DEN", "RHOZ"},
			NPHI:  []string{"NPHI", "TNPH", "NPOR"},
			RT:    []string{"RT", "ILD", "LLD", "RDEP"},
			PE:    []string{"PE", "PEF", "PEFZ"},
		},
		ClayVolume: ClayVolumeConfig{
			Method:          clayvolume.LarionovTertiary.String(),
			CleanPercentile: 5,
			ClayPercentile:  95,
		},
		Porosity: PorosityConfig{
			MatrixDensity:       2.65,
			FluidDensity:        1.00,
			Lithology:           porosity.Sandstone.String(),
			Combination:         porosity.Arithmetic.String(),
			GasCorrectionFactor: porosity.DefaultGasCorrectionFactor,
		},
		Saturation: SaturationConfig{
			Method: saturation.ArchieSimple.String(),
			A:      1, M: 2, N: 2, Rw: 0.05, Rsh: 2,
		},
		Permeability: PermeabilityConfig{
			Method:   permeability.Timur.String(),
			RockType: permeability.Sandstone.String(),
			Swi:      0.25,
			Sorting:  permeability.DefaultSorting,
		},
		Lithology: LithologyConfig{
			Fluid: lithology.DefaultFluid,
			Pay:   lithology.DefaultPayCutoffs(),
			Hard:  lithology.DefaultHardThresholds(),
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	for tag, fn := range map[string]validator.Func{
		"vcl_method":  parses(clayvolume.ParseMethod),
		"sw_method":   parses(saturation.ParseMethod),
		"perm_method": parses(permeability.ParseMethod),
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("config: register %s validation: %v", tag, err))
		}
	}

	// Use YAML key names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(payCutoffsValidation, lithology.PayCutoffs{})
	v.RegisterStructValidation(hardThresholdsValidation, lithology.HardThresholds{})
	return v
}

func parses[T any](parse func(string) (T, error)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := parse(fl.Field().String())
		return err == nil
	}
}

func payCutoffsValidation(sl validator.StructLevel) {
	c := sl.Current().Interface().(lithology.PayCutoffs)
	if c.Step <= 0 {
		sl.ReportError(c.Step, "step", "Step", "gt", "0")
	}
	if c.MaxVsh < 0 || c.MaxVsh > 1 {
		sl.ReportError(c.MaxVsh, "max_vsh", "MaxVsh", "fraction", "")
	}
	if c.MaxSw < 0 || c.MaxSw > 1 {
		sl.ReportError(c.MaxSw, "max_sw", "MaxSw", "fraction", "")
	}
	if c.MinPorosity < 0 || c.MinPorosity > 1 {
		sl.ReportError(c.MinPorosity, "min_porosity", "MinPorosity", "fraction", "")
	}
}

func hardThresholdsValidation(sl validator.StructLevel) {
	t := sl.Current().Interface().(lithology.HardThresholds)
	if t.Step <= 0 {
		sl.ReportError(t.Step, "step", "Step", "gt", "0")
	}
	if t.MinPE <= 0 {
		sl.ReportError(t.MinPE, "min_pe", "MinPE", "gt", "0")
	}
	if t.MinRhob <= 0 {
		sl.ReportError(t.MinRhob, "min_rhob", "MinRhob", "gt", "0")
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s (got %v)", field, fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// LoadFromFile loads configuration from a YAML file over the defaults and
// validates it
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Package main provides the petrocalc binary entry point.
// petrocalc reads a CSV table of well-log curves and reports clay volume,
// porosity, water saturation, permeability and lithology.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/user/petro_engine_go/internal/config"
	"github.com/user/petro_engine_go/internal/report"
)

const (
	Version = "0.1.0"
	appName = "petrocalc"
)

func main() {
	if err := rootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the persistent flags shared by every command.
type options struct {
	input      string
	configPath string
	format     string
	output     string
	logLevel   string

	gr, rhob, nphi, rt, pe string
}

func rootCmd(stdout io.Writer) *cobra.Command {
	var (
		opts   options
		app    *App
		logger *zap.Logger
	)

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Petrophysical calculations on well-log curves",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `petrocalc reads a CSV table of well-log curves (one column per
mnemonic) and computes:
- clay volume from gamma ray
- density, neutron and combined porosity
- water saturation (Archie, Archie with clay, Simandoux)
- permeability (Timur, Kozeny-Carman, Wyllie-Rose)
- lithology, reservoir quality and pay zones`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger, err = newLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			app = NewApp(cfg, logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.input, "input", "i", "", "CSV curve table")
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVarP(&opts.format, "format", "f", "text", "Report format (text, yaml)")
	pf.StringVarP(&opts.output, "output", "o", "", "Report file (default stdout)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.gr, "gr", "", "Gamma ray mnemonic")
	pf.StringVar(&opts.rhob, "rhob", "", "Bulk density mnemonic")
	pf.StringVar(&opts.nphi, "nphi", "", "Neutron porosity mnemonic")
	pf.StringVar(&opts.rt, "rt", "", "True resistivity mnemonic")
	pf.StringVar(&opts.pe, "pe", "", "Photoelectric factor mnemonic")

	// run wraps a stage: load the table, run the stage, write the report.
	run := func(title string, stage func(*Run) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if opts.input == "" {
				return fmt.Errorf("--input is required")
			}
			f, err := report.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			tbl, err := app.Load(opts.input)
			if err != nil {
				return err
			}
			r := app.Run(tbl)
			if err := stage(r); err != nil {
				return err
			}
			heading := fmt.Sprintf("%s: %s", title, filepath.Base(opts.input))
			if opts.output != "" {
				if err := report.BuildReport(opts.output, f, heading, r.Sections()); err != nil {
					return err
				}
				app.sendStatus("report written", zap.String("path", opts.output))
				return nil
			}
			return app.Report(stdout, f, heading, r)
		}
	}

	var compare bool
	vcl := &cobra.Command{
		Use:   "vcl",
		Short: "Clay volume from gamma ray",
		RunE: run("Clay volume", func(r *Run) error {
			if compare {
				_, err := r.CompareClayVolume()
				return err
			}
			_, err := r.ClayVolume()
			return err
		}),
	}
	vcl.Flags().BoolVar(&compare, "compare", false, "Run and compare every method")

	cmd.AddCommand(
		vcl,
		&cobra.Command{
			Use:   "porosity",
			Short: "Density, neutron and combined porosity",
			RunE: run("Porosity", func(r *Run) error {
				_, err := r.Porosity()
				return err
			}),
		},
		&cobra.Command{
			Use:   "saturation",
			Short: "Water saturation",
			RunE: run("Water saturation", func(r *Run) error {
				_, err := r.Saturation()
				return err
			}),
		},
		&cobra.Command{
			Use:   "permeability",
			Short: "Permeability from porosity",
			RunE: run("Permeability", func(r *Run) error {
				_, err := r.Permeability()
				return err
			}),
		},
		&cobra.Command{
			Use:   "lithology",
			Short: "Neutron-density and photoelectric lithology",
			RunE:  run("Lithology", (*Run).Lithology),
		},
		&cobra.Command{
			Use:   "pipeline",
			Short: "Every calculation, reservoir quality and pay zones",
			RunE:  run("Petrophysical evaluation", (*Run).Pipeline),
		},
		&cobra.Command{
			Use:   "config",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				if opts.output != "" {
					return app.cfg.SaveToFile(opts.output)
				}
				enc := yaml.NewEncoder(stdout)
				enc.SetIndent(2)
				if err := enc.Encode(app.cfg); err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				return enc.Close()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

// loadConfig reads the config file, when given, and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(opts.configPath); err != nil {
			return nil, err
		}
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = strings.ToLower(opts.logLevel)
	}
	for _, o := range []struct {
		flag string
		dst  *[]string
	}{
		{opts.gr, &cfg.Curves.GR},
		{opts.rhob, &cfg.Curves.RHOB},
		{opts.nphi, &cfg.Curves.NPHI},
		{opts.rt, &cfg.Curves.RT},
		{opts.pe, &cfg.Curves.PE},
	} {
		if o.flag != "" {
			*o.dst = []string{o.flag}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a zap logger writing to stderr so reports on stdout stay clean.
func newLogger(c config.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = c.Encoding
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

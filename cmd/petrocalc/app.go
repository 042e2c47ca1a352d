package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/user/petro_engine_go/internal/analysis"
	"github.com/user/petro_engine_go/internal/clayvolume"
	"github.com/user/petro_engine_go/internal/config"
	"github.com/user/petro_engine_go/internal/lithology"
	"github.com/user/petro_engine_go/internal/parser"
	"github.com/user/petro_engine_go/internal/permeability"
	"github.com/user/petro_engine_go/internal/porosity"
	"github.com/user/petro_engine_go/internal/report"
	"github.com/user/petro_engine_go/internal/saturation"
)

// App holds the configuration and one instance of every calculator.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	clay  *clayvolume.Calculator
	por   *porosity.Calculator
	sat   *saturation.Calculator
	perm  *permeability.Calculator
	litho *lithology.Analyzer
}

// NewApp creates the calculators with the configured history size.
func NewApp(cfg *config.Config, logger *zap.Logger) *App {
	opts := []analysis.Option{analysis.WithLogger(logger), analysis.WithHistorySize(cfg.HistorySize)}
	return &App{
		cfg:    cfg,
		logger: logger,
		clay:   clayvolume.New(opts...),
		por:    porosity.New(opts...),
		sat:    saturation.New(opts...),
		perm:   permeability.New(opts...),
		litho:  lithology.New(opts...),
	}
}

func (a *App) sendStatus(message string, fields ...zap.Field) {
	a.logger.Info(message, fields...)
}

// Load reads the curve table and logs its parse warnings.
func (a *App) Load(path string) (*parser.ParsedCurves, error) {
	a.sendStatus("parsing curve table", zap.String("path", path))
	tbl, err := parser.ParseCurveFile(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV: %w", err)
	}
	for _, e := range tbl.ParseErrors {
		a.logger.Warn("parse warning", zap.String("detail", e))
	}
	if tbl.NumRows == 0 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}
	a.sendStatus("parsed curve table", zap.Int("rows", tbl.NumRows), zap.Strings("curves", tbl.Mnemonics))
	return tbl, nil
}

// Run starts a staged calculation over one curve table.
func (a *App) Run(tbl *parser.ParsedCurves) *Run {
	return &Run{app: a, tbl: tbl}
}

// Report writes the sections of a run.
func (a *App) Report(w io.Writer, f report.Format, title string, r *Run) error {
	return report.Write(w, f, title, r.sections)
}

// Run computes stages on demand. Each stage runs its prerequisites once and
// appends its results to the report sections.
type Run struct {
	app      *App
	tbl      *parser.ParsedCurves
	sections []report.Section

	vcl  *clayvolume.Result
	phie []float64
	sw   *saturation.Result
	k    *permeability.Result
}

func (r *Run) add(title string, res report.Reportable) {
	r.sections = append(r.sections, report.Section{Title: title, Result: res})
}

// Sections returns the report sections computed so far.
func (r *Run) Sections() []report.Section {
	return r.sections
}

func (r *Run) curve(name string, candidates []string) ([]float64, error) {
	c, mnemonic, ok := r.tbl.Lookup(candidates...)
	if !ok {
		return nil, fmt.Errorf("curve %s not found (tried %v)", name, candidates)
	}
	r.app.logger.Debug("curve selected", zap.String("input", name), zap.String("mnemonic", mnemonic))
	return c, nil
}

func (r *Run) optionalCurve(candidates []string) []float64 {
	c, _, _ := r.tbl.Lookup(candidates...)
	return c
}

// ClayVolume computes VCL from GR with the configured method.
func (r *Run) ClayVolume() (*clayvolume.Result, error) {
	if r.vcl != nil {
		return r.vcl, nil
	}
	gr, err := r.curve("GR", r.app.cfg.Curves.GR)
	if err != nil {
		return nil, err
	}
	p, err := r.app.cfg.ClayVolume.Params()
	if err != nil {
		return nil, err
	}
	res, err := r.app.clay.Calculate(gr, p)
	if err != nil {
		return nil, fmt.Errorf("clay volume: %w", err)
	}
	r.vcl = res
	r.add("Clay volume ("+res.Method+")", res)
	return res, nil
}

// CompareClayVolume runs every clay volume method and reports each one.
func (r *Run) CompareClayVolume() (*clayvolume.BatchResult, error) {
	gr, err := r.curve("GR", r.app.cfg.Curves.GR)
	if err != nil {
		return nil, err
	}
	p, err := r.app.cfg.ClayVolume.Params()
	if err != nil {
		return nil, err
	}
	batch, err := r.app.clay.BatchCalculate(gr, clayvolume.Methods, p)
	if err != nil {
		return nil, fmt.Errorf("clay volume comparison: %w", err)
	}
	for _, m := range batch.Methods {
		r.add("Clay volume ("+m.String()+")", batch.Results[m])
	}
	if batch.Comparison != nil {
		for _, pc := range batch.Comparison.Correlations {
			r.app.sendStatus("method correlation",
				zap.String("pair", pc.A.String()+"/"+pc.B.String()), zap.Float64("r", pc.R))
		}
	}
	return batch, nil
}

// Porosity computes effective porosity. With both RHOB and NPHI the
// combined result is used, clay and gas corrected when configured; with
// RHOB only the density porosity is used.
func (r *Run) Porosity() ([]float64, error) {
	if r.phie != nil {
		return r.phie, nil
	}
	cfg := r.app.cfg.Porosity
	rhob, err := r.curve("RHOB", r.app.cfg.Curves.RHOB)
	if err != nil {
		return nil, err
	}
	var vcl []float64
	if cfg.ApplyClayCorrection {
		v, err := r.ClayVolume()
		if err != nil {
			return nil, err
		}
		vcl = v.VCL
	}
	p, err := cfg.CombinedParams()
	if err != nil {
		return nil, err
	}

	nphi := r.optionalCurve(r.app.cfg.Curves.NPHI)
	if nphi == nil {
		den, err := r.app.por.Density(rhob, vcl, p.Density)
		if err != nil {
			return nil, fmt.Errorf("density porosity: %w", err)
		}
		r.phie = den.PHID
		r.add("Density porosity", den)
		return r.phie, nil
	}

	res, err := r.app.por.Combined(rhob, nphi, vcl, p)
	if err != nil {
		return nil, fmt.Errorf("combined porosity: %w", err)
	}
	r.phie = res.PHIE
	if cfg.ApplyGasCorrection && res.Gas.Count > 0 {
		if res, err = r.app.por.ApplyGasCorrection(res, cfg.GasCorrectionFactor); err != nil {
			return nil, fmt.Errorf("gas correction: %w", err)
		}
		r.phie = res.GasCorrection.PHIE
		r.app.sendStatus("gas correction applied", zap.Float64("percentage", res.GasCorrection.Percentage))
	}
	if ind, err := porosity.LithologyRecommendation(res.PHID, res.PHIN); err == nil {
		r.app.sendStatus("porosity lithology indication",
			zap.String("primary", ind.Primary), zap.String("confidence", ind.Confidence))
	}
	r.add("Combined porosity ("+res.Method+")", res)
	return r.phie, nil
}

// Saturation computes Sw from RT and the effective porosity.
func (r *Run) Saturation() (*saturation.Result, error) {
	if r.sw != nil {
		return r.sw, nil
	}
	rt, err := r.curve("RT", r.app.cfg.Curves.RT)
	if err != nil {
		return nil, err
	}
	phi, err := r.Porosity()
	if err != nil {
		return nil, err
	}
	m, err := r.app.cfg.Saturation.Model()
	if err != nil {
		return nil, err
	}
	in := saturation.Inputs{RT: rt, Porosity: phi}
	if m != saturation.ArchieSimple {
		v, err := r.ClayVolume()
		if err != nil {
			return nil, err
		}
		in.Vclay = v.VCL
	}
	res, err := r.app.sat.Calculate(m, in, r.app.cfg.Saturation.Params())
	if err != nil {
		return nil, fmt.Errorf("water saturation: %w", err)
	}
	r.sw = res
	r.add("Water saturation ("+res.Method+")", res)
	return res, nil
}

// Permeability runs the configured correlation on the effective porosity.
// Timur uses the configured constant Swi; grain-size correlations read a
// D50 curve when the table has one.
func (r *Run) Permeability() (*permeability.Result, error) {
	if r.k != nil {
		return r.k, nil
	}
	phi, err := r.Porosity()
	if err != nil {
		return nil, err
	}
	cfg := r.app.cfg.Permeability
	m, err := cfg.Model()
	if err != nil {
		return nil, err
	}
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	in := permeability.Inputs{
		Porosity:  phi,
		Swi:       permeability.SwiConstant(cfg.Swi),
		GrainSize: r.optionalCurve([]string{"D50", "GRAIN_SIZE"}),
	}
	res, err := r.app.perm.Calculate(m, in, p)
	if err != nil {
		return nil, fmt.Errorf("permeability: %w", err)
	}
	cl := permeability.Classify(res.K)
	for _, cc := range cl.Classes {
		r.app.logger.Debug("permeability class",
			zap.String("class", cc.Class.Name), zap.Int("count", cc.Count), zap.Float64("percentage", cc.Percentage))
	}
	r.k = res
	r.add("Permeability ("+res.Method+")", res)
	return res, nil
}

// Lithology runs the crossplot analyses the available curves allow.
func (r *Run) Lithology() error {
	cfg := r.app.cfg.Lithology
	rhob, err := r.curve("RHOB", r.app.cfg.Curves.RHOB)
	if err != nil {
		return err
	}
	nphi := r.optionalCurve(r.app.cfg.Curves.NPHI)
	pe := r.optionalCurve(r.app.cfg.Curves.PE)

	if nphi != nil {
		nd, err := r.app.litho.NeutronDensity(rhob, nphi, pe, cfg.Fluid)
		if err != nil {
			return fmt.Errorf("neutron-density analysis: %w", err)
		}
		r.add("Neutron-density crossplot", nd)
	}
	if pe != nil {
		pr, err := r.app.litho.Photoelectric(pe, rhob, nphi)
		if err != nil {
			return fmt.Errorf("photoelectric analysis: %w", err)
		}
		r.add("Photoelectric mineralogy", pr)

		hard, err := r.app.litho.HardFormations(pe, rhob, cfg.Hard)
		if err != nil {
			return fmt.Errorf("hard formations: %w", err)
		}
		r.add("Hard formations", hard)
	}
	if nphi == nil && pe == nil {
		r.app.logger.Warn("lithology needs NPHI or PE besides RHOB; skipped")
	}
	return nil
}

// Reservoir grades reservoir quality and picks pay from the computed
// porosity, permeability, clay volume and saturation.
func (r *Run) Reservoir() error {
	vcl, err := r.ClayVolume()
	if err != nil {
		return err
	}
	phi, err := r.Porosity()
	if err != nil {
		return err
	}
	sw, err := r.Saturation()
	if err != nil {
		return err
	}
	k, err := r.Permeability()
	if err != nil {
		return err
	}

	rq, err := r.app.litho.ReservoirQuality(phi, k.K, vcl.VCL, sw.SW)
	if err != nil {
		return fmt.Errorf("reservoir quality: %w", err)
	}
	r.add("Reservoir quality", rq)

	pay, err := r.app.litho.PayZones(vcl.VCL, phi, sw.SW, r.app.cfg.Lithology.Pay)
	if err != nil {
		return fmt.Errorf("pay zones: %w", err)
	}
	r.add("Pay zones", pay)
	r.app.sendStatus("pay zones identified", zap.Int("samples", pay.Count), zap.Float64("net_thickness", pay.NetThickness))
	return nil
}

// Pipeline runs every stage.
func (r *Run) Pipeline() error {
	if err := r.Reservoir(); err != nil {
		return err
	}
	return r.Lithology()
}

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeWell writes a synthetic 20-sample well: GR rising from 30 to 125 API,
// RHOB from 2.30 to 2.49 g/cc, NPHI from 0.15 to 0.34, RT falling from 50
// to 12 ohm.m and PE rising from 2.0 to 3.9.
func writeWell(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("# synthetic well\nDEPTH,GR,RHOB,NPHI,RT,PE\nm,gAPI,g/cc,v/v,ohm.m,b/e\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "%.1f,%.1f,%.3f,%.3f,%.1f,%.2f\n",
			1500+0.5*float64(i), 30+5*float64(i), 2.30+0.01*float64(i),
			0.15+0.01*float64(i), 50-2*float64(i), 2.0+0.1*float64(i))
	}
	path := filepath.Join(t.TempDir(), "well.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestPipelineYAML(t *testing.T) {
	out, err := execute(t, "pipeline", "--input", writeWell(t), "--format", "yaml")
	require.NoError(t, err)

	var doc struct {
		Title    string `yaml:"title"`
		Sections []struct {
			Title  string         `yaml:"title"`
			Result map[string]any `yaml:"result"`
		} `yaml:"sections"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Petrophysical evaluation: well.csv", doc.Title)

	titles := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{
		"Clay volume (larionov_tertiary)",
		"Combined porosity (arithmetic)",
		"Water saturation (archie_simple)",
		"Permeability (timur)",
		"Reservoir quality",
		"Pay zones",
		"Neutron-density crossplot",
		"Photoelectric mineralogy",
		"Hard formations",
	}, titles)
	assert.Equal(t, "vcl_calculation", doc.Sections[0].Result["type"])
}

func TestSaturationText(t *testing.T) {
	out, err := execute(t, "saturation", "-i", writeWell(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Water saturation: well.csv")
	assert.Contains(t, out, "Combined porosity (arithmetic)")
	assert.Contains(t, out, "Water saturation (archie_simple)")
	assert.NotContains(t, out, "Clay volume")
}

func TestVCLCompare(t *testing.T) {
	out, err := execute(t, "vcl", "--compare", "-i", writeWell(t), "-f", "yaml")
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(out, "type: vcl_calculation"))
}

func TestReportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	out, err := execute(t, "lithology", "-i", writeWell(t), "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Neutron-density crossplot")
}

func TestCommandErrors(t *testing.T) {
	well := writeWell(t)

	_, err := execute(t, "vcl")
	assert.ErrorContains(t, err, "--input is required")

	_, err = execute(t, "vcl", "-i", well, "--gr", "SGR")
	assert.ErrorContains(t, err, "curve GR not found")

	_, err = execute(t, "vcl", "-i", well, "-f", "pdf")
	assert.ErrorContains(t, err, "unknown report format")

	_, err = execute(t, "vcl", "-i", filepath.Join(t.TempDir(), "none.csv"))
	assert.ErrorContains(t, err, "error parsing CSV")

	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("saturation:\n  rw: 0\n"), 0o644))
	_, err = execute(t, "saturation", "-i", well, "-c", cfgPath)
	assert.ErrorContains(t, err, "saturation.rw")
}

func TestNotImplementedModel(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "petrocalc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("saturation:\n  method: indonesian\n"), 0o644))
	_, err := execute(t, "saturation", "-i", writeWell(t), "-c", cfgPath)
	assert.ErrorContains(t, err, "not implemented")
}

func TestConfigAndVersion(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "history_size: 100")
	assert.Contains(t, out, "level: error")

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "petrocalc version 0.1.0\n", out)
}

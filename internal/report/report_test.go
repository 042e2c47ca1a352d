package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/user/petro_engine_go/internal/clayvolume"
	"github.com/user/petro_engine_go/internal/saturation"
)

func sampleSections(t *testing.T) []Section {
	t.Helper()
	vcl, err := clayvolume.New().Calculate([]float64{20, 40, 60, 80, 100, 120}, clayvolume.DefaultParams())
	require.NoError(t, err)
	sw, err := saturation.New().ArchieSimple([]float64{50, 0.5}, []float64{0.2, 0.1}, saturation.DefaultParams())
	require.NoError(t, err)
	return []Section{
		{Title: "Clay volume", Result: vcl},
		{Title: "Water saturation", Result: sw},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, "Well W-1", sampleSections(t)))
	out := buf.String()

	assert.Contains(t, out, "Well W-1\n========")
	assert.Contains(t, out, "Clay volume\n-----------")
	assert.Contains(t, out, "Method:  larionov_tertiary")
	assert.Contains(t, out, "Quality: ")
	assert.Contains(t, out, "gr_clean_source")
	assert.Contains(t, out, "Output curves:")
	assert.Contains(t, out, "VCL_larionov_tertiary")
	assert.Contains(t, out, "archie_simple")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, "Well W-1", sampleSections(t)))

	var doc struct {
		Title    string `yaml:"title"`
		Sections []struct {
			Title  string         `yaml:"title"`
			Curves map[string]int `yaml:"curves"`
			Result map[string]any `yaml:"result"`
		} `yaml:"sections"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Well W-1", doc.Title)
	require.Len(t, doc.Sections, 2)

	clay := doc.Sections[0]
	assert.Equal(t, 6, clay.Curves["VCL"])
	assert.Equal(t, "vcl_calculation", clay.Result["type"])
	assert.Contains(t, clay.Result, "qc_stats")
	assert.Contains(t, clay.Result, "gr_clean")
	assert.NotContains(t, clay.Result, "vcl")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "text": FormatText, "yaml": FormatYAML, "yml": FormatYAML} {
		f, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, f)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)

	assert.Error(t, Write(&bytes.Buffer{}, Format(7), "x", nil))
}

func TestBuildReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, BuildReport(path, FormatYAML, "Well W-1", sampleSections(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Well W-1")

	err = BuildReport(filepath.Join(t.TempDir(), "missing", "r.txt"), FormatText, "x", nil)
	assert.ErrorContains(t, err, "failed to create report file")
}

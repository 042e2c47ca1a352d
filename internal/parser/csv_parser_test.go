package parser

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `# well W-1 export
DEPTH,GR,RHOB,NPHI
m,gAPI,g/cc,v/v
1000.0,45.2,2.45,0.21
1000.5,-999.25,2.40,NaN

1001.0,80.1,,0.30
1001.5,abc,2.55,-9999
`

func TestParseCurves(t *testing.T) {
	parsed, err := ParseCurves(strings.NewReader(sampleTable))
	require.NoError(t, err)

	assert.Equal(t, []string{"DEPTH", "GR", "RHOB", "NPHI"}, parsed.Mnemonics)
	assert.Equal(t, 4, parsed.NumRows)
	assert.Equal(t, "gAPI", parsed.Units["GR"])
	assert.Equal(t, []float64{1000, 1000.5, 1001, 1001.5}, parsed.Curves["DEPTH"])

	gr := parsed.Curves["GR"]
	assert.Equal(t, 45.2, gr[0])
	assert.True(t, math.IsNaN(gr[1]))
	assert.Equal(t, 80.1, gr[2])
	assert.True(t, math.IsNaN(gr[3]))

	assert.True(t, math.IsNaN(parsed.Curves["RHOB"][2]))
	assert.True(t, math.IsNaN(parsed.Curves["NPHI"][1]))
	assert.True(t, math.IsNaN(parsed.Curves["NPHI"][3]))

	require.Len(t, parsed.ParseErrors, 1)
	assert.Contains(t, parsed.ParseErrors[0], "'abc'")
	assert.Contains(t, parsed.ParseErrors[0], "GR")
}

func TestParseCurvesWithoutUnits(t *testing.T) {
	parsed, err := ParseCurves(strings.NewReader("gr, rt\n50,10\n60\n70,20,5\n"))
	require.NoError(t, err)
	assert.Empty(t, parsed.Units)
	assert.Equal(t, []string{"GR", "RT"}, parsed.Mnemonics)
	assert.Equal(t, 3, parsed.NumRows)

	rt, ok := parsed.Curve("rt")
	require.True(t, ok)
	assert.Equal(t, 10.0, rt[0])
	assert.True(t, math.IsNaN(rt[1]))
	assert.Equal(t, 20.0, rt[2])
	assert.Len(t, parsed.ParseErrors, 2)
}

func TestParseCurvesErrors(t *testing.T) {
	tests := []struct {
		name, input string
	}{
		{"empty", ""},
		{"only comments", "# nothing here\n"},
		{"duplicate mnemonic", "GR,gr\n1,2\n"},
		{"blank mnemonic", "GR,,RT\n1,2,3\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCurves(strings.NewReader(tc.input))
			assert.Error(t, err)
		})
	}

	parsed, err := ParseCurves(strings.NewReader("GR\n"))
	require.NoError(t, err)
	assert.Zero(t, parsed.NumRows)
	assert.Len(t, parsed.ParseErrors, 1)
}

func TestLookup(t *testing.T) {
	parsed, err := ParseCurves(strings.NewReader("SGR,ILD\n50,10\n"))
	require.NoError(t, err)

	c, name, ok := parsed.Lookup("GR", "sgr")
	require.True(t, ok)
	assert.Equal(t, "SGR", name)
	assert.Equal(t, []float64{50}, c)

	_, _, ok = parsed.Lookup("RHOB", "DEN")
	assert.False(t, ok)
}

func TestParseCurveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "well.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o644))

	parsed, err := ParseCurveFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, parsed.NumRows)

	_, err = ParseCurveFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

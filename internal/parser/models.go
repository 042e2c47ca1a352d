package parser

import "strings"

// NullValues are the cell contents read as missing samples, besides the
// empty cell. Comparison is case-insensitive.
var NullValues = []string{"nan", "null", "-999.25", "-999", "-9999"}

// ParsedCurves holds the curves of a delimited curve table, one slice per
// column, all of length NumRows.
type ParsedCurves struct {
	Curves      map[string][]float64
	Mnemonics   []string          // column order of the header row
	Units       map[string]string // empty when the table has no units row
	NumRows     int
	ParseErrors []string // non-fatal problems, one entry per cell or row
}

// NewParsedCurves returns an empty table.
func NewParsedCurves() *ParsedCurves {
	return &ParsedCurves{
		Curves:      make(map[string][]float64),
		Mnemonics:   make([]string, 0),
		Units:       make(map[string]string),
		ParseErrors: make([]string, 0),
	}
}

// Curve returns the curve for a mnemonic, ignoring case.
func (p *ParsedCurves) Curve(mnemonic string) ([]float64, bool) {
	c, ok := p.Curves[normalize(mnemonic)]
	return c, ok
}

// Lookup returns the first curve present among the candidate mnemonics and
// the mnemonic that matched.
func (p *ParsedCurves) Lookup(candidates ...string) ([]float64, string, bool) {
	for _, m := range candidates {
		if c, ok := p.Curve(m); ok {
			return c, normalize(m), true
		}
	}
	return nil, "", false
}

func normalize(mnemonic string) string {
	return strings.ToUpper(strings.TrimSpace(mnemonic))
}

package report

import (
	"fmt"

	"github.com/user/petro_engine_go/internal/analysis"
)

// Reportable is satisfied by every calculator result: the shared envelope
// is promoted from analysis.Result and each typed result lists its curves.
type Reportable interface {
	Envelope() *analysis.Result
	Curves() map[string][]float64
}

// Section is one titled result in a report.
type Section struct {
	Title  string
	Result Reportable
}

// Format selects the report encoding.
type Format int

const (
	FormatText Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps "text" or "yaml" to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unknown report format %q (want text or yaml)", s)
	}
}

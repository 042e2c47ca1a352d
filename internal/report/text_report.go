package report

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/user/petro_engine_go/internal/analysis"
)

// textStyler writes headed blocks and aligned tables, keeping the first
// write error.
type textStyler struct {
	w   io.Writer
	err error
}

func (s *textStyler) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *textStyler) heading(level int, text string) {
	switch level {
	case 1:
		s.printf("%s\n%s\n\n", text, strings.Repeat("=", len(text)))
	default:
		s.printf("%s\n%s\n", text, strings.Repeat("-", len(text)))
	}
}

func (s *textStyler) table(header []string, rows [][]string) {
	if s.err != nil || len(rows) == 0 {
		return
	}
	tw := tabwriter.NewWriter(s.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  "+strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, "  "+strings.Join(row, "\t"))
	}
	s.err = tw.Flush()
}

func (s *textStyler) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	s.printf("%s:\n", title)
	for _, it := range items {
		s.printf("  - %s\n", it)
	}
}

// WriteText renders the sections as a plain-text report.
func WriteText(w io.Writer, title string, sections []Section) error {
	s := &textStyler{w: w}
	s.heading(1, title)
	for _, sec := range sections {
		writeSection(s, sec)
		s.printf("\n")
	}
	return s.err
}

func writeSection(s *textStyler, sec Section) {
	env := sec.Result.Envelope()
	s.heading(2, sec.Title)
	s.printf("Type:    %s\n", env.Type)
	if env.Method != "" {
		s.printf("Method:  %s\n", env.Method)
	}
	s.printf("Quality: %s\n", env.Quality.Overall)

	if len(env.Parameters) > 0 {
		s.printf("Parameters:\n")
		rows := make([][]string, 0, len(env.Parameters))
		for _, k := range sortedKeys(env.Parameters) {
			rows = append(rows, []string{k, formatValue(env.Parameters[k])})
		}
		s.table([]string{"NAME", "VALUE"}, rows)
	}
	if len(env.InputStats) > 0 {
		s.printf("Input curves:\n")
		s.table(statsHeader, statsRows(env.InputStats))
	}
	if len(env.QC) > 0 {
		s.printf("Output curves:\n")
		s.table(statsHeader, statsRows(env.QC))
	}
	s.list("Validation warnings", env.Warnings)
	s.list("Quality warnings", env.Quality.Warnings)
	s.list("Recommendations", env.Quality.Recommendations)
}

var statsHeader = []string{"KEY", "CURVE", "VALID", "NULL%", "MIN", "MAX", "MEAN", "STD", "P10", "P50", "P90"}

func statsRows(stats map[string]analysis.QCStats) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, k := range sortedKeys(stats) {
		st := stats[k]
		rows = append(rows, []string{
			k, st.CurveName,
			fmt.Sprintf("%d/%d", st.ValidPoints, st.TotalPoints),
			fmt.Sprintf("%.1f", st.NullPercentage),
			formatFloat(st.Min), formatFloat(st.Max), formatFloat(st.Mean), formatFloat(st.Std),
			formatFloat(st.P10), formatFloat(st.P50), formatFloat(st.P90),
		})
	}
	return rows
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return formatFloat(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

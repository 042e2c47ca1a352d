package report

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Title    string        `yaml:"title"`
	Sections []yamlSection `yaml:"sections"`
}

type yamlSection struct {
	Title  string         `yaml:"title"`
	Curves map[string]int `yaml:"curves,omitempty"` // mnemonic to sample count
	Result Reportable     `yaml:"result"`
}

// WriteYAML renders the sections as one YAML document. Curve samples are
// not written, only their lengths.
func WriteYAML(w io.Writer, title string, sections []Section) error {
	doc := yamlDocument{Title: title, Sections: make([]yamlSection, 0, len(sections))}
	for _, sec := range sections {
		ys := yamlSection{Title: sec.Title, Result: sec.Result}
		if curves := sec.Result.Curves(); len(curves) > 0 {
			ys.Curves = make(map[string]int, len(curves))
			for k, c := range curves {
				ys.Curves[k] = len(c)
			}
		}
		doc.Sections = append(doc.Sections, ys)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// Write renders the sections in the given format.
func Write(w io.Writer, f Format, title string, sections []Section) error {
	switch f {
	case FormatYAML:
		return WriteYAML(w, title, sections)
	case FormatText:
		return WriteText(w, title, sections)
	default:
		return fmt.Errorf("unsupported report format %s", f)
	}
}

// BuildReport writes the report to a file.
func BuildReport(filepath string, f Format, title string, sections []Section) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := Write(file, f, title, sections); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	return nil
}

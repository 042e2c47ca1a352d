package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
)

// ParseCurveFile reads a CSV curve table from disk.
func ParseCurveFile(filepath string) (*ParsedCurves, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()
	return ParseCurves(file)
}

// ParseCurves reads a curve table. The first record is the header of curve
// mnemonics. A second record without a numeric cell is taken as the units
// row. Lines starting with '#' are comments.
func ParseCurves(r io.Reader) (*ParsedCurves, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	allRows = slices.DeleteFunc(allRows, blankRow)
	if len(allRows) == 0 {
		return nil, errors.New("no header row found")
	}

	parsed := NewParsedCurves()
	header := allRows[0]
	for col, cell := range header {
		m := normalize(cell)
		if m == "" {
			return nil, fmt.Errorf("header column %d has no mnemonic", col+1)
		}
		if _, dup := parsed.Curves[m]; dup {
			return nil, fmt.Errorf("duplicate mnemonic %q in header", m)
		}
		parsed.Mnemonics = append(parsed.Mnemonics, m)
		parsed.Curves[m] = make([]float64, 0, len(allRows)-1)
	}

	body := allRows[1:]
	if len(body) > 0 && isUnitsRow(body[0]) {
		for col, cell := range body[0] {
			if col < len(parsed.Mnemonics) {
				parsed.Units[parsed.Mnemonics[col]] = strings.TrimSpace(cell)
			}
		}
		body = body[1:]
	}

	for i, row := range body {
		line := i + 1
		if len(row) > len(parsed.Mnemonics) {
			parsed.ParseErrors = append(parsed.ParseErrors,
				fmt.Sprintf("Warning: data row %d has %d cells, expected %d. Extra cells ignored.", line, len(row), len(parsed.Mnemonics)))
		}
		for col, m := range parsed.Mnemonics {
			if col >= len(row) {
				if col == len(row) {
					parsed.ParseErrors = append(parsed.ParseErrors,
						fmt.Sprintf("Warning: data row %d has %d cells, expected %d. Missing cells set to NaN.", line, len(row), len(parsed.Mnemonics)))
				}
				parsed.Curves[m] = append(parsed.Curves[m], math.NaN())
				continue
			}
			v, err := parseCell(row[col])
			if err != nil {
				parsed.ParseErrors = append(parsed.ParseErrors,
					fmt.Sprintf("Error converting value '%s' for curve '%s', data row %d. Using NaN. Error: %v", row[col], m, line, err))
			}
			parsed.Curves[m] = append(parsed.Curves[m], v)
		}
	}
	parsed.NumRows = len(body)
	if parsed.NumRows == 0 {
		parsed.ParseErrors = append(parsed.ParseErrors, "Warning: No data rows found.")
	}
	return parsed, nil
}

// parseCell returns NaN for null markers and for cells that do not parse.
func parseCell(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" || slices.Contains(NullValues, strings.ToLower(s)) {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), err
	}
	if math.IsInf(v, 0) {
		return math.NaN(), fmt.Errorf("infinite value")
	}
	return v, nil
}

func isUnitsRow(row []string) bool {
	for _, cell := range row {
		s := strings.TrimSpace(cell)
		if s == "" {
			continue
		}
		if slices.Contains(NullValues, strings.ToLower(s)) {
			return false
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return false
		}
	}
	return true
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

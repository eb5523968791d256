package parsers

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Nydauron/champstandings/standings"
)

var numberRegex = regexp.MustCompile(`^[+-]?[0-9]+$`)

// Table is the raw grid of one series, as read from an input file.
type Table struct {
	Name string
	Rows [][]standings.Cell
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	FormatYAML Format = "yaml"
)

// DetectFormat picks an input format from a file name or URL path.
func DetectFormat(location string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(location))
	if i := strings.IndexAny(ext, "?#"); i != -1 {
		ext = ext[:i]
	}
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".htm", ".html":
		return FormatHTML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("cannot detect input format of %q, set it explicitly", location)
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatHTML, FormatYAML:
		return f, nil
	case "htm":
		return FormatHTML, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown input format %q", s)
}

// SeriesName derives a series name from an input location.
func SeriesName(location string) string {
	base := filepath.Base(location)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// textCell types a cell read from an untyped source: digits become an
// integer, anything else is text.
func textCell(raw string) standings.Cell {
	trimmed := strings.TrimSpace(raw)
	if numberRegex.MatchString(trimmed) {
		if n, err := strconv.Atoi(trimmed); err == nil {
			return standings.IntCell(n)
		}
	}
	return standings.TextCell(trimmed)
}

package writers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Nydauron/champstandings/report"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON, FormatText:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Encode writes rep to w in the given format.
func Encode(w io.Writer, format Format, rep *report.Report) error {
	switch format {
	case FormatYAML:
		return encodeYAML(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatText:
		return encodeText(w, rep)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func encodeYAML(w io.Writer, rep *report.Report) error {
	yamlEncoder := yaml.NewEncoder(w)
	yamlEncoder.SetIndent(2)
	if err := yamlEncoder.Encode(rep); err != nil {
		return fmt.Errorf("encoding to YAML failed: %w", err)
	}
	if err := yamlEncoder.Close(); err != nil {
		return fmt.Errorf("encoding to YAML failed on close: %w", err)
	}
	return nil
}

// encodeText prints one "Pos / Driver / Pts / Finishes" table per week.
// Dropped finishes are shown in parentheses.
func encodeText(w io.Writer, rep *report.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if rep.Title != "" {
		fmt.Fprintf(tw, "%s\n\n", rep.Title)
	}
	for _, s := range rep.Series {
		fmt.Fprintf(tw, "== %s ==\n", s.Name)
		if s.Error != "" {
			fmt.Fprintf(tw, "error: %s\n\n", s.Error)
			continue
		}
		for _, week := range s.Weeks {
			heading := fmt.Sprintf("Week %s", week.Label)
			if week.Event != "" {
				heading += " - " + week.Event
			}
			fmt.Fprintln(tw, heading)
			fmt.Fprintln(tw, "Pos\tDriver\tPts\tFinishes\t")
			for _, st := range week.Standings {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t\n", st.Position, st.Driver, st.Points, finishesText(st.Finishes))
			}
			fmt.Fprintln(tw)
		}
	}
	return tw.Flush()
}

func finishesText(finishes []report.Finish) string {
	parts := make([]string, len(finishes))
	for i, f := range finishes {
		if f.Counted {
			parts[i] = f.Label
		} else {
			parts[i] = "(" + f.Label + ")"
		}
	}
	return strings.Join(parts, " ")
}

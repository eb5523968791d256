package parsers

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Nydauron/champstandings/standings"
	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Series []yamlSeries `yaml:"series"`
}

type yamlSeries struct {
	Name string        `yaml:"name"`
	Rows [][]yaml.Node `yaml:"rows"`
}

// ParseYAML reads series from one or more YAML documents of the form
//
//	series:
//	  - name: Formula 2
//	    rows:
//	      - [Week, Track, Ana, Ben]
//	      - [1, Monza, 1, DNF]
//
// Scalar tags decide cell kinds, so a quoted "5" is a code rather than a
// position.
func ParseYAML(r io.Reader) ([]Table, error) {
	dec := yaml.NewDecoder(r)
	tables := []Table{}
	for {
		var doc yamlDocument
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		for _, s := range doc.Series {
			name := s.Name
			if name == "" {
				name = fmt.Sprintf("Series %d", len(tables)+1)
			}
			table := Table{Name: name, Rows: make([][]standings.Cell, len(s.Rows))}
			for i, row := range s.Rows {
				table.Rows[i] = make([]standings.Cell, len(row))
				for j := range row {
					cell, err := nodeCell(&row[j])
					if err != nil {
						return nil, fmt.Errorf("yaml: series %q row %d col %d: %w", name, i+1, j+1, err)
					}
					table.Rows[i][j] = cell
				}
			}
			tables = append(tables, table)
		}
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("yaml: no series found")
	}
	return tables, nil
}

func nodeCell(n *yaml.Node) (standings.Cell, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return standings.Cell{}, fmt.Errorf("expected a scalar cell at line %d", n.Line)
	}
	switch n.ShortTag() {
	case "!!null":
		return standings.BlankCell(), nil
	case "!!str":
		return standings.TextCell(n.Value), nil
	case "!!int":
		var i int
		if err := n.Decode(&i); err != nil {
			return standings.Cell{}, err
		}
		return standings.IntCell(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return standings.Cell{}, err
		}
		return standings.OtherCell(f), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return standings.Cell{}, err
		}
		return standings.OtherCell(b), nil
	case "!!timestamp":
		var ts time.Time
		if err := n.Decode(&ts); err != nil {
			return standings.Cell{}, err
		}
		return standings.OtherCell(ts.Format(time.DateOnly)), nil
	default:
		return standings.OtherCell(n.Value), nil
	}
}

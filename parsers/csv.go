package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/Nydauron/champstandings/standings"
)

// ParseCSV reads a single series from CSV. Rows may have different lengths;
// missing cells are reported by the engine, not here.
func ParseCSV(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	table := Table{Name: name}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		row := make([]standings.Cell, len(record))
		for i, cell := range record {
			row[i] = textCell(cell)
		}
		table.Rows = append(table.Rows, row)
	}
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("csv: no rows in %q", name)
	}
	return &table, nil
}

package parsers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Nydauron/champstandings/standings"
	"golang.org/x/net/html"
)

// ParseHTML reads every <table> in the document as one series. A table is
// named by its <caption>, then its id attribute, then its position.
func ParseHTML(r io.Reader) ([]Table, error) {
	z := html.NewTokenizer(r)
	tables := []Table{}

	depth := 0
	isTable := false
	isCaption := false
	isTableRow := false
	isTableCell := false

	var bufferTable Table
	var bufferRow []standings.Cell
	var bufferCell strings.Builder
	var caption strings.Builder
	tableID := ""
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("html: %w", err)
			}
			return tables, nil
		case html.StartTagToken:
			t := z.Token()
			switch t.Data {
			case "table":
				// nested tables are flattened into the enclosing cell
				depth++
				if depth > 1 {
					continue
				}
				isTable = true
				bufferTable = Table{}
				caption.Reset()
				tableID = ""
				for _, attr := range t.Attr {
					if attr.Key == "id" {
						tableID = strings.TrimSpace(attr.Val)
					}
				}
			case "caption":
				isCaption = isTable && depth == 1
			case "tr":
				if depth != 1 {
					continue
				}
				isTableRow = isTable
				bufferRow = nil
			case "th", "td":
				if depth != 1 {
					continue
				}
				isTableCell = isTableRow
				bufferCell.Reset()
			case "br":
				if isTableCell {
					bufferCell.WriteByte(' ')
				}
			}
		case html.TextToken:
			t := z.Token()
			if isCaption {
				caption.WriteString(t.Data)
				continue
			}
			if isTableCell {
				bufferCell.WriteString(t.Data)
			}
		case html.EndTagToken:
			t := z.Token()
			switch t.Data {
			case "caption":
				isCaption = false
			case "th", "td":
				if depth != 1 {
					continue
				}
				if isTableCell {
					bufferRow = append(bufferRow, textCell(strings.Join(strings.Fields(bufferCell.String()), " ")))
				}
				isTableCell = false
			case "tr":
				if depth != 1 {
					continue
				}
				if isTableRow {
					bufferTable.Rows = append(bufferTable.Rows, bufferRow)
				}
				isTableRow = false
				bufferRow = nil
			case "table":
				if depth == 0 {
					continue
				}
				depth--
				if depth > 0 {
					continue
				}
				isTable = false
				bufferTable.Name = strings.TrimSpace(caption.String())
				if bufferTable.Name == "" {
					bufferTable.Name = tableID
				}
				if bufferTable.Name == "" {
					bufferTable.Name = fmt.Sprintf("Series %d", len(tables)+1)
				}
				tables = append(tables, bufferTable)
			}
		}
	}
}

package standings

import (
	"fmt"
	"strconv"
	"strings"
)

// CellKind tells how the input layer typed a grid cell.
type CellKind uint8

const (
	CellBlank CellKind = iota
	CellInt
	CellText
	// CellOther holds any value that is neither an integer nor a string
	// (floats, booleans, dates).
	CellOther
)

// Cell is one typed value of the input grid.
type Cell struct {
	Kind  CellKind
	Int   int
	Text  string
	Other any
}

func BlankCell() Cell {
	return Cell{Kind: CellBlank}
}

func IntCell(n int) Cell {
	return Cell{Kind: CellInt, Int: n}
}

// TextCell returns a text cell, or a blank one when s is only whitespace.
func TextCell(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return BlankCell()
	}
	return Cell{Kind: CellText, Text: s}
}

func OtherCell(v any) Cell {
	if v == nil {
		return BlankCell()
	}
	return Cell{Kind: CellOther, Other: v}
}

func (c Cell) IsBlank() bool {
	return c.Kind == CellBlank
}

// String is the printed form of the cell, used for names and labels.
func (c Cell) String() string {
	switch c.Kind {
	case CellInt:
		return strconv.Itoa(c.Int)
	case CellText:
		return c.Text
	case CellOther:
		return fmt.Sprint(c.Other)
	default:
		return ""
	}
}

// FinishCodeFromCell converts a non-blank cell into a finish code. The
// returned bool is false when the cell could not be read as a position or a
// code and was recovered as a non-numeric code instead.
//
// The cell's type decides: a text cell reading "5" is a code, not 5th place.
func FinishCodeFromCell(c Cell) (FinishCode, bool) {
	switch c.Kind {
	case CellInt:
		if c.Int > 0 && c.Int < SentinelRank {
			return NumericPosition(c.Int), true
		}
		return NonNumericCode(c.String()), false
	case CellText:
		return NonNumericCode(c.Text), true
	default:
		return NonNumericCode(c.String()), false
	}
}
